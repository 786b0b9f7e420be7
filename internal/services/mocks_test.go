package services_test

import (
	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of repositories.Store. WithinTransaction
// runs fn against the same mocks unless TxErr is set.
type MockStore struct {
	ProductRepo  *MockProductRepository
	CategoryRepo *MockCategoryRepository
	SupplierRepo *MockSupplierRepository
	TxErr        error
}

func NewMockStore() *MockStore {
	return &MockStore{
		ProductRepo:  new(MockProductRepository),
		CategoryRepo: new(MockCategoryRepository),
		SupplierRepo: new(MockSupplierRepository),
	}
}

func (s *MockStore) Products() repositories.ProductRepository    { return s.ProductRepo }
func (s *MockStore) Categories() repositories.CategoryRepository { return s.CategoryRepo }
func (s *MockStore) Suppliers() repositories.SupplierRepository  { return s.SupplierRepo }

func (s *MockStore) WithinTransaction(fn func(tx repositories.Store) error) error {
	if s.TxErr != nil {
		return s.TxErr
	}
	return fn(s)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) products(args mock.Arguments) ([]models.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) product(args mock.Arguments) (*models.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	return m.products(m.Called())
}

func (m *MockProductRepository) List(req models.PageRequest) (models.Page[models.Product], error) {
	args := m.Called(req)
	return args.Get(0).(models.Page[models.Product]), args.Error(1)
}

func (m *MockProductRepository) Search(term string, req models.PageRequest) (models.Page[models.Product], error) {
	args := m.Called(term, req)
	return args.Get(0).(models.Page[models.Product]), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	return m.product(m.Called(id))
}

func (m *MockProductRepository) GetBySKU(sku string) (*models.Product, error) {
	return m.product(m.Called(sku))
}

func (m *MockProductRepository) ExistsByID(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(sku string) (bool, error) {
	args := m.Called(sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) GetByCategoryID(categoryID string) ([]models.Product, error) {
	return m.products(m.Called(categoryID))
}

func (m *MockProductRepository) GetBySupplierID(supplierID string) ([]models.Product, error) {
	return m.products(m.Called(supplierID))
}

func (m *MockProductRepository) GetByPriceRange(min, max decimal.Decimal) ([]models.Product, error) {
	return m.products(m.Called(min, max))
}

func (m *MockProductRepository) GetLowStock() ([]models.Product, error) {
	return m.products(m.Called())
}

func (m *MockProductRepository) CountLowStock() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategoryID(categoryID string) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySupplierID(supplierID string) (int64, error) {
	args := m.Called(supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) category(args mock.Arguments) (*models.Category, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) categories(args mock.Arguments) ([]models.Category, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	return m.categories(m.Called())
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	return m.category(m.Called(id))
}

func (m *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	return m.category(m.Called(name))
}

func (m *MockCategoryRepository) ExistsByID(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) SearchByName(term string) ([]models.Category, error) {
	return m.categories(m.Called(term))
}

func (m *MockCategoryRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	return m.Called(category).Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

// MockSupplierRepository is a mock implementation of repositories.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) supplier(args mock.Arguments) (*models.Supplier, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) suppliers(args mock.Arguments) ([]models.Supplier, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) GetAll() ([]models.Supplier, error) {
	return m.suppliers(m.Called())
}

func (m *MockSupplierRepository) GetByID(id string) (*models.Supplier, error) {
	return m.supplier(m.Called(id))
}

func (m *MockSupplierRepository) GetByEmail(email string) (*models.Supplier, error) {
	return m.supplier(m.Called(email))
}

func (m *MockSupplierRepository) ExistsByID(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) SearchByName(term string) ([]models.Supplier, error) {
	return m.suppliers(m.Called(term))
}

func (m *MockSupplierRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Create(supplier *models.Supplier) error {
	return m.Called(supplier).Error(0)
}

func (m *MockSupplierRepository) Update(supplier *models.Supplier) error {
	return m.Called(supplier).Error(0)
}

func (m *MockSupplierRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	return m.Called(routingKey, body).Error(0)
}
