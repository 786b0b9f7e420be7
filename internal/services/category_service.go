package services

import (
	"errors"
	"fmt"
	"strings"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/validation"

	"github.com/rs/zerolog/log"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store  repositories.Store
	events emitter
}

// NewCategoryService creates a new CategoryService. publisher may be nil.
func NewCategoryService(store repositories.Store, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		store:  store,
		events: emitter{publisher: publisher},
	}
}

// GetAllCategories returns every category ordered by name.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.store.Categories().GetAll()
}

func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.store.Categories().GetByID(id)
}

func (s *CategoryService) GetCategoryByName(name string) (*models.Category, error) {
	return s.store.Categories().GetByName(name)
}

// CreateCategory validates the candidate and rejects a name already in use.
func (s *CategoryService) CreateCategory(category *models.Category) (*models.Category, error) {
	if err := validation.Category(category); err != nil {
		return nil, err
	}
	category.ID = ""

	var created *models.Category
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		categories := tx.Categories()
		taken, err := categories.ExistsByName(category.Name)
		if err != nil {
			return err
		}
		if taken {
			return &apperrors.DuplicateKeyError{Entity: "category", Field: "name", Value: category.Name}
		}
		if err := categories.Create(category); err != nil {
			return err
		}
		created, err = categories.GetByID(category.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	s.events.emit(EventCategoryCreated, created)
	return created, nil
}

// UpdateCategory overwrites name and description. A name held by another
// category is rejected as a duplicate.
func (s *CategoryService) UpdateCategory(id string, details *models.Category) (*models.Category, error) {
	if details == nil {
		return nil, validation.Category(nil)
	}

	var updated *models.Category
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		categories := tx.Categories()
		category, err := categories.GetByID(id)
		if err != nil {
			return err
		}
		category.Assign(details)
		if err := validation.Category(category); err != nil {
			return err
		}
		other, err := categories.GetByName(category.Name)
		switch {
		case err == nil && other.ID != id:
			return &apperrors.DuplicateKeyError{Entity: "category", Field: "name", Value: category.Name}
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return err
		}
		if err := categories.Update(category); err != nil {
			return err
		}
		updated, err = categories.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("category_id", id).Msg("category updated")
	s.events.emit(EventCategoryUpdated, updated)
	return updated, nil
}

// DeleteCategory removes a category that no product references. The dependent
// count is taken inside the delete transaction.
func (s *CategoryService) DeleteCategory(id string) error {
	var deleted *models.Category
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		category, err := tx.Categories().GetByID(id)
		if err != nil {
			return err
		}
		dependents, err := tx.Products().CountByCategoryID(id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return fmt.Errorf("cannot delete category with %d associated products; reassign or delete them first: %w",
				dependents, apperrors.ErrConflict)
		}
		deleted = category
		return tx.Categories().Delete(id)
	})
	if err != nil {
		return err
	}

	log.Info().Str("category_id", id).Msg("category deleted")
	s.events.emit(EventCategoryDeleted, deleted)
	return nil
}

// SearchCategories matches term case-insensitively against the name.
// A blank term returns every category ordered by name.
func (s *CategoryService) SearchCategories(term string) ([]models.Category, error) {
	if strings.TrimSpace(term) == "" {
		return s.GetAllCategories()
	}
	return s.store.Categories().SearchByName(strings.TrimSpace(term))
}

func (s *CategoryService) CountCategories() (int64, error) {
	return s.store.Categories().Count()
}
