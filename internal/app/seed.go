package app

import (
	"fmt"

	"inventory/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// seedDemoData fills an empty database with a few categories, suppliers and
// products. It does nothing when any product already exists.
func (a *App) seedDemoData() error {
	count, err := a.Products.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("products", count).Msg("database not empty, skipping demo data")
		return nil
	}

	categories := map[string]*models.Category{}
	for _, c := range []models.Category{
		{Name: "Electronics", Description: "Computers and accessories"},
		{Name: "Office Supplies", Description: "Paper, pens and desk items"},
	} {
		c := c
		created, err := a.Categories.CreateCategory(&c)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		categories[created.Name] = created
	}

	email := "sales@northwind.example"
	supplier, err := a.Suppliers.CreateSupplier(&models.Supplier{
		Name:          "Northwind Traders",
		ContactPerson: "Nancy Davolio",
		Email:         &email,
		Phone:         "555-0100",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	products := []struct {
		name, sku, category, price string
		quantity, minStock         int
	}{
		{"Laptop", "ELEC-LAPTOP-01", "Electronics", "1200.00", 10, 5},
		{"Mechanical Keyboard", "ELEC-KEYB-01", "Electronics", "75.00", 25, 10},
		{"Wireless Mouse", "ELEC-MOUSE-01", "Electronics", "25.00", 4, 10},
		{"Printer Paper", "OFF-PAPER-A4", "Office Supplies", "6.50", 120, 30},
	}
	for _, p := range products {
		categoryID := categories[p.category].ID
		_, err := a.Products.CreateProduct(&models.Product{
			Name:          p.name,
			SKU:           p.sku,
			Price:         decimal.RequireFromString(p.price),
			Quantity:      p.quantity,
			MinStockLevel: p.minStock,
			CategoryID:    &categoryID,
			SupplierID:    &supplier.ID,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.sku, err)
		}
		log.Debug().Str("sku", p.sku).Msg("seeded product")
	}
	log.Info().Int("products", len(products)).Msg("demo data seeded")
	return nil
}
