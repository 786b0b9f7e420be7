package services_test

import (
	"errors"
	"testing"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	service := services.NewCategoryService(newStore(t), nil)

	created, err := service.CreateCategory(&models.Category{Name: "Electronics", Description: "Gadgets"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(0), created.ProductCount)

	_, err = service.CreateCategory(&models.Category{Name: "Electronics"})
	var dup *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Field)

	_, err = service.CreateCategory(&models.Category{Name: "E"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	service := services.NewCategoryService(newStore(t), nil)

	tools, err := service.CreateCategory(&models.Category{Name: "Tools"})
	require.NoError(t, err)
	_, err = service.CreateCategory(&models.Category{Name: "Garden"})
	require.NoError(t, err)

	updated, err := service.UpdateCategory(tools.ID, &models.Category{Name: "Tools", Description: "Hand tools"})
	require.NoError(t, err, "keeping its own name is not a collision")
	assert.Equal(t, "Hand tools", updated.Description)

	_, err = service.UpdateCategory(tools.ID, &models.Category{Name: "Garden"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	_, err = service.UpdateCategory("missing", &models.Category{Name: "Other"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryService_DeleteCategory_WithProducts(t *testing.T) {
	store := newStore(t)
	categories := services.NewCategoryService(store, nil)
	products := services.NewProductService(store, nil)

	electronics, err := categories.CreateCategory(&models.Category{Name: "Electronics"})
	require.NoError(t, err)

	widget := newProduct("Widget", "W-1", 5, 10)
	widget.CategoryID = &electronics.ID
	created, err := products.CreateProduct(widget)
	require.NoError(t, err)
	assert.True(t, created.IsLowStock())

	fetched, err := categories.GetCategoryByID(electronics.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.ProductCount)

	err = categories.DeleteCategory(electronics.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = categories.GetCategoryByID(electronics.ID)
	require.NoError(t, err, "a refused delete keeps the category")

	require.NoError(t, products.DeleteProduct(created.ID))
	require.NoError(t, categories.DeleteCategory(electronics.ID))

	_, err = categories.GetCategoryByID(electronics.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, categories.DeleteCategory(electronics.ID), apperrors.ErrNotFound)
}

func TestCategoryService_DeleteCategory_CountFailure(t *testing.T) {
	store := NewMockStore()
	service := services.NewCategoryService(store, nil)

	store.CategoryRepo.On("GetByID", "c1").Return(&models.Category{ID: "c1", Name: "Tools"}, nil).Once()
	store.ProductRepo.On("CountByCategoryID", "c1").Return(int64(0), apperrors.Store("count products by category", errors.New("timeout"))).Once()

	err := service.DeleteCategory("c1")

	assert.ErrorIs(t, err, apperrors.ErrStore)
	store.CategoryRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCategoryService_SearchCategories(t *testing.T) {
	service := services.NewCategoryService(newStore(t), nil)

	for _, name := range []string{"Office Supplies", "Electronics", "Outdoor"} {
		_, err := service.CreateCategory(&models.Category{Name: name})
		require.NoError(t, err)
	}

	found, err := service.SearchCategories("OU")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Outdoor", found[0].Name)

	all, err := service.SearchCategories("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Electronics", all[0].Name)

	count, err := service.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCategoryService_PublishesEvents(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCategoryService(newStore(t), publisher)

	publisher.On("Publish", services.EventCategoryCreated, mock.Anything).Return(nil).Once()
	publisher.On("Publish", services.EventCategoryDeleted, mock.Anything).Return(nil).Once()

	created, err := service.CreateCategory(&models.Category{Name: "Books"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteCategory(created.ID))

	publisher.AssertExpectations(t)
}
