package repositories

import (
	"inventory/internal/models"

	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	List(req models.PageRequest) (models.Page[models.Product], error)
	Search(term string, req models.PageRequest) (models.Page[models.Product], error)
	GetByID(id string) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	ExistsByID(id string) (bool, error)
	ExistsBySKU(sku string) (bool, error)
	GetByCategoryID(categoryID string) ([]models.Product, error)
	GetBySupplierID(supplierID string) ([]models.Product, error)
	GetByPriceRange(min, max decimal.Decimal) ([]models.Product, error)
	GetLowStock() ([]models.Product, error)
	CountLowStock() (int64, error)
	CountByCategoryID(categoryID string) (int64, error)
	CountBySupplierID(supplierID string) (int64, error)
	Count() (int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateStock(product *models.Product) error
	Delete(id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	ExistsByID(id string) (bool, error)
	ExistsByName(name string) (bool, error)
	SearchByName(term string) ([]models.Category, error)
	Count() (int64, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	GetAll() ([]models.Supplier, error)
	GetByID(id string) (*models.Supplier, error)
	GetByEmail(email string) (*models.Supplier, error)
	ExistsByID(id string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	SearchByName(term string) ([]models.Supplier, error)
	Count() (int64, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id string) error
}

// Store groups the repositories and scopes them to a unit of work.
// Repositories obtained from the Store passed to fn share one transaction.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	WithinTransaction(fn func(tx Store) error) error
}
