package repositories_test

import (
	"errors"
	"fmt"
	"testing"

	"inventory/internal/apperrors"
	"inventory/internal/database/dbtest"
	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, repo repositories.ProductRepository, name, sku string, price string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, SKU: sku, Price: decimal.RequireFromString(price), Quantity: 1, MinStockLevel: 0}
	require.NoError(t, repo.Create(p))
	return p
}

func TestGORMStore_WithinTransaction_RollsBack(t *testing.T) {
	store := repositories.NewGORMStore(dbtest.New(t))
	boom := errors.New("boom")

	err := store.WithinTransaction(func(tx repositories.Store) error {
		require.NoError(t, tx.Categories().Create(&models.Category{Name: "Transient"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := store.Categories().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGORMProductRepository_List(t *testing.T) {
	repo := repositories.NewGORMStore(dbtest.New(t)).Products()
	for i := 0; i < 12; i++ {
		seedProduct(t, repo, fmt.Sprintf("Item %02d", i), fmt.Sprintf("SKU-%02d", i), fmt.Sprintf("%d.50", i+1))
	}

	page, err := repo.List(models.PageRequest{Page: 1, Size: 5, SortBy: "price", SortDir: "desc"})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "SKU-06", page.Items[0].SKU)
	assert.Equal(t, int64(12), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)

	last, err := repo.List(models.PageRequest{Page: 2, Size: 5, SortBy: "name"})
	require.NoError(t, err)
	assert.Len(t, last.Items, 2)

	unknownSort, err := repo.List(models.PageRequest{SortBy: "price; DROP TABLE products"})
	require.NoError(t, err)
	assert.Len(t, unknownSort.Items, models.DefaultPageSize)
}

func TestGORMProductRepository_SearchEscapesWildcards(t *testing.T) {
	repo := repositories.NewGORMStore(dbtest.New(t)).Products()
	seedProduct(t, repo, "100% Cotton", "COT-1", "5.00")
	seedProduct(t, repo, "1000 Screws", "SCR_1", "5.00")

	page, err := repo.Search("0%", models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "COT-1", page.Items[0].SKU)

	page, err = repo.Search("r_1", models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "SCR_1", page.Items[0].SKU)
}

func TestGORMProductRepository_WriteErrors(t *testing.T) {
	repo := repositories.NewGORMStore(dbtest.New(t)).Products()
	p := seedProduct(t, repo, "Widget", "W-1", "1.00")

	err := repo.Create(&models.Product{Name: "Copy", SKU: "W-1", Price: decimal.NewFromInt(1)})
	var dup *apperrors.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "W-1", dup.Value)

	missing := "no-such-category"
	p.CategoryID = &missing
	assert.ErrorIs(t, repo.Update(p), apperrors.ErrConflict)

	ghost := &models.Product{ID: "ghost", Name: "Ghost", SKU: "G-1", Price: decimal.NewFromInt(1)}
	assert.ErrorIs(t, repo.Update(ghost), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStock(ghost), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete("ghost"), apperrors.ErrNotFound)
}

func TestGORMCategoryRepository_ProductCountAndDelete(t *testing.T) {
	store := repositories.NewGORMStore(dbtest.New(t))
	category := &models.Category{Name: "Tools"}
	require.NoError(t, store.Categories().Create(category))

	p := &models.Product{Name: "Saw", SKU: "SAW-1", Price: decimal.NewFromInt(12), CategoryID: &category.ID}
	require.NoError(t, store.Products().Create(p))

	fetched, err := store.Categories().GetByName("Tools")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.ProductCount)

	assert.ErrorIs(t, store.Categories().Delete(category.ID), apperrors.ErrConflict)

	_, err = store.Categories().GetByName("Nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMSupplierRepository_DeleteReferencedIsConflict(t *testing.T) {
	store := repositories.NewGORMStore(dbtest.New(t))
	supplier := &models.Supplier{Name: "Acme"}
	require.NoError(t, store.Suppliers().Create(supplier))
	p := &models.Product{Name: "Anvil", SKU: "AN-1", Price: decimal.NewFromInt(40), SupplierID: &supplier.ID}
	require.NoError(t, store.Products().Create(p))

	err := store.Suppliers().Delete(supplier.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, apperrors.ErrStore)

	ok, err := store.Suppliers().ExistsByID(supplier.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGORMProductRepository_EmbeddedReferencesCarryProductCount(t *testing.T) {
	store := repositories.NewGORMStore(dbtest.New(t))
	category := &models.Category{Name: "Tools"}
	require.NoError(t, store.Categories().Create(category))
	supplier := &models.Supplier{Name: "Acme"}
	require.NoError(t, store.Suppliers().Create(supplier))
	for _, sku := range []string{"SAW-1", "SAW-2"} {
		p := &models.Product{Name: "Saw", SKU: sku, Price: decimal.NewFromInt(12), CategoryID: &category.ID, SupplierID: &supplier.ID}
		require.NoError(t, store.Products().Create(p))
	}

	fetched, err := store.Products().GetBySKU("SAW-1")
	require.NoError(t, err)
	require.NotNil(t, fetched.Category)
	require.NotNil(t, fetched.Supplier)
	assert.Equal(t, "Tools", fetched.Category.Name)
	assert.Equal(t, int64(2), fetched.Category.ProductCount)
	assert.Equal(t, int64(2), fetched.Supplier.ProductCount)

	page, err := store.Products().List(models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].Category.ProductCount)
}

func TestGORMSupplierRepository_EmailUniqueness(t *testing.T) {
	repo := repositories.NewGORMStore(dbtest.New(t)).Suppliers()
	mail := "orders@acme.test"

	require.NoError(t, repo.Create(&models.Supplier{Name: "Acme", Email: &mail}))
	err := repo.Create(&models.Supplier{Name: "Acme Clone", Email: &mail})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	require.NoError(t, repo.Create(&models.Supplier{Name: "No Mail A"}))
	require.NoError(t, repo.Create(&models.Supplier{Name: "No Mail B"}))

	ok, err := repo.ExistsByEmail(mail)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.SearchByName("no mail")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
