package repositories

import (
	"fmt"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"gorm.io/gorm"
)

const supplierWithCount = "suppliers.*, (SELECT COUNT(*) FROM products WHERE products.supplier_id = suppliers.id) AS product_count"

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{db: db}
}

func (r *GORMSupplierRepository) counted() *gorm.DB {
	return r.db.Model(&models.Supplier{}).Select(supplierWithCount)
}

func (r *GORMSupplierRepository) find(op string, query *gorm.DB) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, apperrors.Store(op, err)
	}
	return suppliers, nil
}

// GetAll returns every supplier ordered by name.
func (r *GORMSupplierRepository) GetAll() ([]models.Supplier, error) {
	return r.find("get all suppliers", r.counted().Order("suppliers.name ASC").Order("suppliers.id ASC"))
}

func (r *GORMSupplierRepository) GetByID(id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.counted().Where("suppliers.id = ?", id).Take(&supplier).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("supplier", id)
		}
		return nil, apperrors.Store(fmt.Sprintf("get supplier by ID %s", id), err)
	}
	return &supplier, nil
}

func (r *GORMSupplierRepository) GetByEmail(email string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.counted().Where("suppliers.email = ?", email).Take(&supplier).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("supplier with email %s %w", email, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store(fmt.Sprintf("get supplier by email %s", email), err)
	}
	return &supplier, nil
}

func (r *GORMSupplierRepository) ExistsByID(id string) (bool, error) {
	ok, err := exists(r.db, &models.Supplier{}, "id = ?", id)
	if err != nil {
		return false, apperrors.Store("check supplier ID", err)
	}
	return ok, nil
}

func (r *GORMSupplierRepository) ExistsByEmail(email string) (bool, error) {
	ok, err := exists(r.db, &models.Supplier{}, "email = ?", email)
	if err != nil {
		return false, apperrors.Store("check supplier email", err)
	}
	return ok, nil
}

// SearchByName matches term as a case-insensitive substring of the name.
func (r *GORMSupplierRepository) SearchByName(term string) ([]models.Supplier, error) {
	query := r.counted().Where(`LOWER(suppliers.name) LIKE ? ESCAPE '\'`, likePattern(term)).
		Order("suppliers.name ASC").Order("suppliers.id ASC")
	return r.find("search suppliers", query)
}

func (r *GORMSupplierRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Supplier{}).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count suppliers", err)
	}
	return count, nil
}

func (r *GORMSupplierRepository) Create(supplier *models.Supplier) error {
	if err := r.db.Create(supplier).Error; err != nil {
		return r.translateWrite("create supplier", supplier, err)
	}
	return nil
}

func (r *GORMSupplierRepository) Update(supplier *models.Supplier) error {
	res := r.db.Model(supplier).
		Select("name", "contact_person", "email", "phone", "address", "updated_at").
		Updates(supplier)
	if res.Error != nil {
		return r.translateWrite("update supplier", supplier, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("supplier", supplier.ID)
	}
	return nil
}

// Delete removes a supplier. The products foreign key rejects the delete
// while any product still references it.
func (r *GORMSupplierRepository) Delete(id string) error {
	res := r.db.Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return fmt.Errorf("supplier %s has associated products: %w", id, apperrors.ErrConflict)
		}
		return apperrors.Store("delete supplier", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("supplier", id)
	}
	return nil
}

func (r *GORMSupplierRepository) translateWrite(op string, supplier *models.Supplier, err error) error {
	if isDuplicate(err) {
		return &apperrors.DuplicateKeyError{Entity: "supplier", Field: "email", Value: supplier.EmailValue()}
	}
	return apperrors.Store(op, err)
}
