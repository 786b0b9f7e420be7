package repositories

import (
	"fmt"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productSortColumns whitelists the columns a product page may be sorted by.
var productSortColumns = map[string]string{
	"id":              "id",
	"name":            "name",
	"sku":             "sku",
	"price":           "price",
	"quantity":        "quantity",
	"min_stock_level": "min_stock_level",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) withRefs() *gorm.DB {
	return r.db.Model(&models.Product{}).
		Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Select(categoryWithCount) }).
		Preload("Supplier", func(db *gorm.DB) *gorm.DB { return db.Select(supplierWithCount) })
}

func (r *GORMProductRepository) find(op string, query *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, apperrors.Store(op, err)
	}
	return products, nil
}

// page counts the filtered rows, then loads one sorted page of them with references.
func (r *GORMProductRepository) page(op string, filter func(*gorm.DB) *gorm.DB, req models.PageRequest) (models.Page[models.Product], error) {
	req = req.Normalized()
	var total int64
	if err := filter(r.db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return models.Page[models.Product]{}, apperrors.Store(op, err)
	}
	column, ok := productSortColumns[req.SortBy]
	if !ok {
		column = "id"
	}
	query := filter(r.withRefs()).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: req.SortDir == "desc"}).
		Offset(req.Offset()).
		Limit(req.Size)
	products, err := r.find(op, query)
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.NewPage(products, req, total), nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	return r.find("get all products", r.withRefs().Order("name").Order("id"))
}

// List retrieves one sorted page of products.
func (r *GORMProductRepository) List(req models.PageRequest) (models.Page[models.Product], error) {
	return r.page("list products", func(db *gorm.DB) *gorm.DB { return db }, req)
}

// Search matches term as a case-insensitive substring of name or SKU.
func (r *GORMProductRepository) Search(term string, req models.PageRequest) (models.Page[models.Product], error) {
	pattern := likePattern(term)
	return r.page("search products", func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(sku) LIKE ? ESCAPE '\'`, pattern, pattern)
	}, req)
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.withRefs().First(&product, "products.id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.Store(fmt.Sprintf("get product by ID %s", id), err)
	}
	return &product, nil
}

// GetBySKU retrieves a single product by its SKU.
func (r *GORMProductRepository) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := r.withRefs().First(&product, "sku = ?", sku).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("product with SKU %s %w", sku, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store(fmt.Sprintf("get product by SKU %s", sku), err)
	}
	return &product, nil
}

func (r *GORMProductRepository) ExistsByID(id string) (bool, error) {
	ok, err := exists(r.db, &models.Product{}, "id = ?", id)
	if err != nil {
		return false, apperrors.Store("check product ID", err)
	}
	return ok, nil
}

func (r *GORMProductRepository) ExistsBySKU(sku string) (bool, error) {
	ok, err := exists(r.db, &models.Product{}, "sku = ?", sku)
	if err != nil {
		return false, apperrors.Store("check product SKU", err)
	}
	return ok, nil
}

func (r *GORMProductRepository) GetByCategoryID(categoryID string) ([]models.Product, error) {
	return r.find("get products by category", r.withRefs().Where("category_id = ?", categoryID).Order("name").Order("id"))
}

func (r *GORMProductRepository) GetBySupplierID(supplierID string) ([]models.Product, error) {
	return r.find("get products by supplier", r.withRefs().Where("supplier_id = ?", supplierID).Order("name").Order("id"))
}

// GetByPriceRange returns products whose price lies in [min, max].
func (r *GORMProductRepository) GetByPriceRange(min, max decimal.Decimal) ([]models.Product, error) {
	return r.find("get products by price range", r.withRefs().Where("price BETWEEN ? AND ?", min, max).Order("price").Order("id"))
}

// GetLowStock returns products whose quantity is at or below their minimum stock level.
func (r *GORMProductRepository) GetLowStock() ([]models.Product, error) {
	return r.find("get low stock products", r.withRefs().Where("quantity <= min_stock_level").Order("name").Order("id"))
}

func (r *GORMProductRepository) CountLowStock() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("quantity <= min_stock_level").Count(&count).Error; err != nil {
		return 0, apperrors.Store("count low stock products", err)
	}
	return count, nil
}

func (r *GORMProductRepository) CountByCategoryID(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count products by category", err)
	}
	return count, nil
}

func (r *GORMProductRepository) CountBySupplierID(supplierID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("supplier_id = ?", supplierID).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count products by supplier", err)
	}
	return count, nil
}

func (r *GORMProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, apperrors.Store("count products", err)
	}
	return count, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit(clause.Associations).Create(product).Error; err != nil {
		return r.translateWrite("create product", product, err)
	}
	return nil
}

// Update writes every mutable column of an existing product. CreatedAt is never rewritten.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).Select("*").Omit(clause.Associations, "id", "created_at").Updates(product)
	if res.Error != nil {
		return r.translateWrite("update product", product, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", product.ID)
	}
	return nil
}

// UpdateStock writes only the quantity and the update timestamp.
func (r *GORMProductRepository) UpdateStock(product *models.Product) error {
	res := r.db.Model(product).Select("quantity", "updated_at").Updates(product)
	if res.Error != nil {
		return apperrors.Store("update product stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Store("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

func (r *GORMProductRepository) translateWrite(op string, product *models.Product, err error) error {
	switch {
	case isDuplicate(err):
		return &apperrors.DuplicateKeyError{Entity: "product", Field: "sku", Value: product.SKU}
	case isForeignKeyViolation(err):
		return fmt.Errorf("product references a missing category or supplier: %w", apperrors.ErrConflict)
	}
	return apperrors.Store(op, err)
}
