package services

import (
	"fmt"
	"strings"
	"time"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/validation"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products.
type ProductService struct {
	store  repositories.Store
	events emitter
	now    func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(store repositories.Store, publisher EventPublisher) *ProductService {
	return &ProductService{
		store:  store,
		events: emitter{publisher: publisher},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.store.Products().GetAll()
}

// ListProducts retrieves one sorted page of products.
func (s *ProductService) ListProducts(req models.PageRequest) (models.Page[models.Product], error) {
	return s.store.Products().List(req)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.store.Products().GetByID(id)
}

// GetProductBySKU retrieves a single product by its SKU.
func (s *ProductService) GetProductBySKU(sku string) (*models.Product, error) {
	return s.store.Products().GetBySKU(sku)
}

// SKUExists reports whether any product uses sku.
func (s *ProductService) SKUExists(sku string) (bool, error) {
	return s.store.Products().ExistsBySKU(sku)
}

// CreateProduct validates the candidate, rejects a duplicate SKU and persists it
// with a newly assigned ID.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := validation.Product(product); err != nil {
		return nil, err
	}
	product.ID = ""

	var created *models.Product
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		products := tx.Products()
		taken, err := products.ExistsBySKU(product.SKU)
		if err != nil {
			return err
		}
		if taken {
			return &apperrors.DuplicateKeyError{Entity: "product", Field: "sku", Value: product.SKU}
		}
		if err := checkProductReferences(tx, product); err != nil {
			return err
		}
		if err := products.Create(product); err != nil {
			return err
		}
		created, err = products.GetByID(product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", created.ID).Str("sku", created.SKU).Msg("product created")
	s.events.emit(EventProductCreated, created)
	s.emitIfLowStock(created)
	return created, nil
}

// UpdateProduct overwrites the mutable fields of product id with details,
// re-validates the result and persists it. The SKU is never changed.
func (s *ProductService) UpdateProduct(id string, details *models.Product) (*models.Product, error) {
	if details == nil {
		return nil, validation.Product(nil)
	}

	var updated *models.Product
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		products := tx.Products()
		product, err := products.GetByID(id)
		if err != nil {
			return err
		}
		product.Assign(details)
		if err := validation.Product(product); err != nil {
			return err
		}
		if err := checkProductReferences(tx, product); err != nil {
			return err
		}
		if err := products.Update(product); err != nil {
			return err
		}
		updated, err = products.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", id).Msg("product updated")
	s.events.emit(EventProductUpdated, updated)
	s.emitIfLowStock(updated)
	return updated, nil
}

// DeleteProduct deletes a product by its ID. Products have no dependents.
func (s *ProductService) DeleteProduct(id string) error {
	var deleted *models.Product
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		product, err := tx.Products().GetByID(id)
		if err != nil {
			return err
		}
		deleted = product
		return tx.Products().Delete(id)
	})
	if err != nil {
		return err
	}

	log.Info().Str("product_id", id).Msg("product deleted")
	s.events.emit(EventProductDeleted, deleted)
	return nil
}

// UpdateStock sets the quantity of a product and refreshes UpdatedAt.
// No other field is touched or re-validated.
func (s *ProductService) UpdateStock(id string, quantity int) (*models.Product, error) {
	var product *models.Product
	var previous int
	err := s.store.WithinTransaction(func(tx repositories.Store) error {
		products := tx.Products()
		p, err := products.GetByID(id)
		if err != nil {
			return err
		}
		if quantity < 0 {
			return fmt.Errorf("stock quantity cannot be negative: %w", apperrors.ErrInvalidArgument)
		}
		previous = p.Quantity
		p.SetStock(quantity, s.now())
		if err := products.UpdateStock(p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("product_id", id).Int("from", previous).Int("to", quantity).Msg("product stock updated")
	s.events.emit(EventProductStockUpdated, map[string]interface{}{
		"id":                product.ID,
		"sku":               product.SKU,
		"previous_quantity": previous,
		"quantity":          product.Quantity,
		"min_stock_level":   product.MinStockLevel,
	})
	s.emitIfLowStock(product)
	return product, nil
}

// SearchProducts matches term case-insensitively against name or SKU.
// A blank term returns the unfiltered page.
func (s *ProductService) SearchProducts(term string, req models.PageRequest) (models.Page[models.Product], error) {
	if strings.TrimSpace(term) == "" {
		return s.store.Products().List(req)
	}
	return s.store.Products().Search(strings.TrimSpace(term), req)
}

// GetLowStockProducts returns every product with quantity <= min stock level.
func (s *ProductService) GetLowStockProducts() ([]models.Product, error) {
	return s.store.Products().GetLowStock()
}

func (s *ProductService) CountLowStockProducts() (int64, error) {
	return s.store.Products().CountLowStock()
}

func (s *ProductService) GetProductsByCategory(categoryID string) ([]models.Product, error) {
	return s.store.Products().GetByCategoryID(categoryID)
}

func (s *ProductService) GetProductsBySupplier(supplierID string) ([]models.Product, error) {
	return s.store.Products().GetBySupplierID(supplierID)
}

// GetProductsByPriceRange returns products priced within [min, max].
func (s *ProductService) GetProductsByPriceRange(min, max decimal.Decimal) ([]models.Product, error) {
	if min.GreaterThan(max) {
		return nil, fmt.Errorf("min price %s is greater than max price %s: %w", min, max, apperrors.ErrInvalidArgument)
	}
	return s.store.Products().GetByPriceRange(min, max)
}

func (s *ProductService) CountProducts() (int64, error) {
	return s.store.Products().Count()
}

func (s *ProductService) emitIfLowStock(p *models.Product) {
	if p.IsLowStock() {
		log.Debug().Str("product_id", p.ID).Int("quantity", p.Quantity).Int("min_stock_level", p.MinStockLevel).Msg("product is low on stock")
		s.events.emit(EventProductLowStock, p)
	}
}

// checkProductReferences rejects references to categories or suppliers that do not exist.
func checkProductReferences(tx repositories.Store, p *models.Product) error {
	if p.CategoryID != nil {
		ok, err := tx.Categories().ExistsByID(*p.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewValidationError("category_id", "exists",
				fmt.Sprintf("category with ID %s does not exist", *p.CategoryID))
		}
	}
	if p.SupplierID != nil {
		ok, err := tx.Suppliers().ExistsByID(*p.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewValidationError("supplier_id", "exists",
				fmt.Sprintf("supplier with ID %s does not exist", *p.SupplierID))
		}
	}
	return nil
}
