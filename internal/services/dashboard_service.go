package services

import (
	"fmt"

	"inventory/internal/models"
)

// DashboardStats is the summary shown on the dashboard.
type DashboardStats struct {
	TotalProducts        int64            `json:"total_products"`
	TotalCategories      int64            `json:"total_categories"`
	TotalSuppliers       int64            `json:"total_suppliers"`
	LowStockProducts     int64            `json:"low_stock_products"`
	LowStockProductsList []models.Product `json:"low_stock_products_list"`
}

// ProductStatsSource is the part of ProductService the dashboard reads.
type ProductStatsSource interface {
	CountProducts() (int64, error)
	GetLowStockProducts() ([]models.Product, error)
}

type CategoryCounter interface {
	CountCategories() (int64, error)
}

type SupplierCounter interface {
	CountSuppliers() (int64, error)
}

// DashboardService recomputes the summary from the three services on every call.
type DashboardService struct {
	products   ProductStatsSource
	categories CategoryCounter
	suppliers  SupplierCounter
}

func NewDashboardService(products ProductStatsSource, categories CategoryCounter, suppliers SupplierCounter) *DashboardService {
	return &DashboardService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
	}
}

// GetStats returns the summary, or an error if any underlying call fails.
// The low-stock count is the length of the returned list, so both always agree.
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	totalProducts, err := s.products.CountProducts()
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: count products: %w", err)
	}
	totalCategories, err := s.categories.CountCategories()
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: count categories: %w", err)
	}
	totalSuppliers, err := s.suppliers.CountSuppliers()
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: count suppliers: %w", err)
	}
	lowStock, err := s.products.GetLowStockProducts()
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: low stock products: %w", err)
	}
	if lowStock == nil {
		lowStock = []models.Product{}
	}

	return &DashboardStats{
		TotalProducts:        totalProducts,
		TotalCategories:      totalCategories,
		TotalSuppliers:       totalSuppliers,
		LowStockProducts:     int64(len(lowStock)),
		LowStockProductsList: lowStock,
	}, nil
}
