package services_test

import (
	"errors"
	"testing"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetStats(t *testing.T) {
	store := newStore(t)
	products := services.NewProductService(store, nil)
	categories := services.NewCategoryService(store, nil)
	suppliers := services.NewSupplierService(store, nil)
	dashboard := services.NewDashboardService(products, categories, suppliers)

	empty, err := dashboard.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalProducts)
	assert.NotNil(t, empty.LowStockProductsList)

	_, err = categories.CreateCategory(&models.Category{Name: "Electronics"})
	require.NoError(t, err)
	_, err = categories.CreateCategory(&models.Category{Name: "Garden"})
	require.NoError(t, err)
	_, err = suppliers.CreateSupplier(&models.Supplier{Name: "Acme"})
	require.NoError(t, err)
	for _, p := range []*models.Product{
		newProduct("Widget", "W-1", 5, 10),
		newProduct("Gadget", "G-1", 50, 10),
		newProduct("Gizmo", "Z-1", 11, 10),
	} {
		_, err := products.CreateProduct(p)
		require.NoError(t, err)
	}

	stats, err := dashboard.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalCategories)
	assert.Equal(t, int64(1), stats.TotalSuppliers)
	assert.Equal(t, int64(1), stats.LowStockProducts)
	require.Len(t, stats.LowStockProductsList, 1)
	assert.Equal(t, "W-1", stats.LowStockProductsList[0].SKU)
}

func TestDashboardService_GetStats_Failure(t *testing.T) {
	store := NewMockStore()
	products := services.NewProductService(store, nil)
	dashboard := services.NewDashboardService(products,
		services.NewCategoryService(store, nil), services.NewSupplierService(store, nil))

	store.ProductRepo.On("Count").Return(int64(4), nil).Once()
	store.CategoryRepo.On("Count").Return(int64(0), apperrors.Store("count categories", errors.New("connection reset"))).Once()

	stats, err := dashboard.GetStats()

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.ErrorContains(t, err, "count categories")
	store.SupplierRepo.AssertNotCalled(t, "Count")
}
