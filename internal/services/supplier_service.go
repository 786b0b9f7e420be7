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

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	store  repositories.Store
	events emitter
}

// NewSupplierService creates a new SupplierService. publisher may be nil.
func NewSupplierService(store repositories.Store, publisher EventPublisher) *SupplierService {
	return &SupplierService{
		store:  store,
		events: emitter{publisher: publisher},
	}
}

// GetAllSuppliers returns every supplier ordered by name.
func (s *SupplierService) GetAllSuppliers() ([]models.Supplier, error) {
	return s.store.Suppliers().GetAll()
}

func (s *SupplierService) GetSupplierByID(id string) (*models.Supplier, error) {
	return s.store.Suppliers().GetByID(id)
}

func (s *SupplierService) GetSupplierByEmail(email string) (*models.Supplier, error) {
	return s.store.Suppliers().GetByEmail(strings.TrimSpace(email))
}

// CreateSupplier validates the candidate and rejects an email already used by
// another supplier. Suppliers without an email never collide.
func (s *SupplierService) CreateSupplier(supplier *models.Supplier) (*models.Supplier, error) {
	if supplier != nil {
		supplier.Normalize()
	}
	if err := validation.Supplier(supplier); err != nil {
		return nil, err
	}
	supplier.ID = ""

	var created *models.Supplier
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		suppliers := tx.Suppliers()
		if supplier.Email != nil {
			taken, err := suppliers.ExistsByEmail(*supplier.Email)
			if err != nil {
				return err
			}
			if taken {
				return &apperrors.DuplicateKeyError{Entity: "supplier", Field: "email", Value: *supplier.Email}
			}
		}
		if err := suppliers.Create(supplier); err != nil {
			return err
		}
		var err error
		created, err = suppliers.GetByID(supplier.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("supplier_id", created.ID).Str("name", created.Name).Msg("supplier created")
	s.events.emit(EventSupplierCreated, created)
	return created, nil
}

// UpdateSupplier overwrites every mutable field. A changed email that another
// supplier already uses is rejected as a duplicate.
func (s *SupplierService) UpdateSupplier(id string, details *models.Supplier) (*models.Supplier, error) {
	if details == nil {
		return nil, validation.Supplier(nil)
	}

	var updated *models.Supplier
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		suppliers := tx.Suppliers()
		supplier, err := suppliers.GetByID(id)
		if err != nil {
			return err
		}
		supplier.Assign(details)
		supplier.Normalize()
		if err := validation.Supplier(supplier); err != nil {
			return err
		}
		if supplier.Email != nil {
			other, err := suppliers.GetByEmail(*supplier.Email)
			switch {
			case err == nil && other.ID != id:
				return &apperrors.DuplicateKeyError{Entity: "supplier", Field: "email", Value: *supplier.Email}
			case err != nil && !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}
		if err := suppliers.Update(supplier); err != nil {
			return err
		}
		updated, err = suppliers.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("supplier_id", id).Msg("supplier updated")
	s.events.emit(EventSupplierUpdated, updated)
	return updated, nil
}

// DeleteSupplier removes a supplier that no product references. The dependent
// count is taken inside the delete transaction.
func (s *SupplierService) DeleteSupplier(id string) error {
	var deleted *models.Supplier
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		supplier, err := tx.Suppliers().GetByID(id)
		if err != nil {
			return err
		}
		dependents, err := tx.Products().CountBySupplierID(id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return fmt.Errorf("cannot delete supplier with %d associated products; reassign or delete them first: %w",
				dependents, apperrors.ErrConflict)
		}
		deleted = supplier
		return tx.Suppliers().Delete(id)
	})
	if err != nil {
		return err
	}

	log.Info().Str("supplier_id", id).Msg("supplier deleted")
	s.events.emit(EventSupplierDeleted, deleted)
	return nil
}

// SearchSuppliers matches term case-insensitively against the name.
// A blank term returns every supplier ordered by name.
func (s *SupplierService) SearchSuppliers(term string) ([]models.Supplier, error) {
	if strings.TrimSpace(term) == "" {
		return s.GetAllSuppliers()
	}
	return s.store.Suppliers().SearchByName(strings.TrimSpace(term))
}

func (s *SupplierService) CountSuppliers() (int64, error) {
	return s.store.Suppliers().Count()
}
