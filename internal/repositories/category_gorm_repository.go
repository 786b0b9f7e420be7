package repositories

import (
	"fmt"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"gorm.io/gorm"
)

const categoryWithCount = "categories.*, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count"

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) counted() *gorm.DB {
	return r.db.Model(&models.Category{}).Select(categoryWithCount)
}

func (r *GORMCategoryRepository) find(op string, query *gorm.DB) ([]models.Category, error) {
	categories := []models.Category{}
	if err := query.Find(&categories).Error; err != nil {
		return nil, apperrors.Store(op, err)
	}
	return categories, nil
}

// GetAll returns every category ordered by name.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	return r.find("get all categories", r.counted().Order("categories.name ASC"))
}

func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.counted().Where("categories.id = ?", id).Take(&category).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("category", id)
		}
		return nil, apperrors.Store(fmt.Sprintf("get category by ID %s", id), err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.counted().Where("categories.name = ?", name).Take(&category).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("category with name %s %w", name, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store(fmt.Sprintf("get category by name %s", name), err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) ExistsByID(id string) (bool, error) {
	ok, err := exists(r.db, &models.Category{}, "id = ?", id)
	if err != nil {
		return false, apperrors.Store("check category ID", err)
	}
	return ok, nil
}

func (r *GORMCategoryRepository) ExistsByName(name string) (bool, error) {
	ok, err := exists(r.db, &models.Category{}, "name = ?", name)
	if err != nil {
		return false, apperrors.Store("check category name", err)
	}
	return ok, nil
}

// SearchByName matches term as a case-insensitive substring of the name.
func (r *GORMCategoryRepository) SearchByName(term string) ([]models.Category, error) {
	query := r.counted().Where(`LOWER(categories.name) LIKE ? ESCAPE '\'`, likePattern(term)).Order("categories.name ASC")
	return r.find("search categories", query)
}

func (r *GORMCategoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count categories", err)
	}
	return count, nil
}

func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return r.translateWrite("create category", category, err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Model(category).Select("name", "description", "updated_at").Updates(category)
	if res.Error != nil {
		return r.translateWrite("update category", category, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category", category.ID)
	}
	return nil
}

// Delete removes a category. The products foreign key rejects the delete
// while any product still references it.
func (r *GORMCategoryRepository) Delete(id string) error {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return fmt.Errorf("category %s has associated products: %w", id, apperrors.ErrConflict)
		}
		return apperrors.Store("delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category", id)
	}
	return nil
}

func (r *GORMCategoryRepository) translateWrite(op string, category *models.Category, err error) error {
	if isDuplicate(err) {
		return &apperrors.DuplicateKeyError{Entity: "category", Field: "name", Value: category.Name}
	}
	return apperrors.Store(op, err)
}
