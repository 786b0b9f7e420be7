package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultMinStockLevel is used when a product is created without a minimum stock level.
const DefaultMinStockLevel = 10

// Product represents a stocked item. Category and Supplier are weak references;
// a product never owns them.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null" validate:"notblank,min=2,max=100"`
	SKU           string          `json:"sku" gorm:"column:sku;type:varchar(50);not null;uniqueIndex:idx_products_sku" validate:"notblank,max=50"`
	Description   string          `json:"description" gorm:"type:varchar(500)" validate:"max=500"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null" validate:"money_positive,money_int=10,money_frac=2"`
	Quantity      int             `json:"quantity" gorm:"not null" validate:"gte=0"`
	MinStockLevel int             `json:"min_stock_level" gorm:"not null" validate:"gte=0"`
	CategoryID    *string         `json:"category_id" gorm:"type:varchar(36);index"`
	Category      *Category       `json:"category,omitempty" gorm:"constraint:OnUpdate:CASCADE" validate:"-"`
	SupplierID    *string         `json:"supplier_id" gorm:"type:varchar(36);index"`
	Supplier      *Supplier       `json:"supplier,omitempty" gorm:"constraint:OnUpdate:CASCADE" validate:"-"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate assigns a new UUID when the caller did not provide one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// IsLowStock reports whether the quantity is at or below the minimum stock level.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// SetStock replaces the quantity and refreshes UpdatedAt.
func (p *Product) SetStock(quantity int, now time.Time) {
	p.Quantity = quantity
	p.UpdatedAt = now
}

// Assign copies the mutable fields of other onto p. ID, SKU and CreatedAt are kept.
func (p *Product) Assign(other *Product) {
	p.Name = other.Name
	p.Description = other.Description
	p.Price = other.Price
	p.Quantity = other.Quantity
	p.MinStockLevel = other.MinStockLevel
	p.CategoryID = other.CategoryID
	p.SupplierID = other.SupplierID
}

func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		LowStock bool `json:"low_stock"`
	}{product(p), p.IsLowStock()})
}

// ProductInput is the write payload for a product. MinStockLevel is optional;
// ToProduct applies DefaultMinStockLevel when it is missing.
type ProductInput struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel *int            `json:"min_stock_level"`
	CategoryID    *string         `json:"category_id"`
	SupplierID    *string         `json:"supplier_id"`
}

func (in ProductInput) ToProduct() *Product {
	minStock := DefaultMinStockLevel
	if in.MinStockLevel != nil {
		minStock = *in.MinStockLevel
	}
	return &Product{
		Name:          in.Name,
		SKU:           in.SKU,
		Description:   in.Description,
		Price:         in.Price,
		Quantity:      in.Quantity,
		MinStockLevel: minStock,
		CategoryID:    optionalID(in.CategoryID),
		SupplierID:    optionalID(in.SupplierID),
	}
}

func optionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
