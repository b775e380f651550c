package repo_test

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func seedProducts(t *testing.T, inv *repo.InMemoryInventory, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		_, err := inv.Products().Create(ctx, models.Product{Name: name, Price: decimal.RequireFromString("1.00"), Quantity: 1})
		require.NoError(t, err)
	}
}

func TestInMemoryProductRepository_Filter(t *testing.T) {
	ctx := context.Background()
	inv := repo.NewInMemoryInventory()
	seedProducts(t, inv, "Laptop", "Mouse", "Laptop Stand", "Keyboard")

	found, total, err := inv.Products().Filter(ctx, repo.ProductFilter{Name: "laptop"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, found, 2)

	page, total, err := inv.Products().Filter(ctx, repo.ProductFilter{Offset: intPtr(1), Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Mouse", page[0].Name)
	assert.Equal(t, "Laptop Stand", page[1].Name)

	empty, total, err := inv.Products().Filter(ctx, repo.ProductFilter{Offset: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, empty)
}

func TestInMemoryProductRepository_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	inv := repo.NewInMemoryInventory()

	_, err := inv.Products().Create(ctx, models.Product{Name: "Orphan", CategoryID: intPtr(42)})
	assert.ErrorIs(t, err, repo.ErrCategoryNotFound)

	_, err = inv.Products().GetByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestInMemoryProductRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	inv := repo.NewInMemoryInventory()
	seedProducts(t, inv, "Mouse")

	p, err := inv.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	p.Quantity = 9
	_, err = inv.Products().Update(ctx, p)
	require.NoError(t, err)

	got, err := inv.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Quantity)

	require.NoError(t, inv.Products().Delete(ctx, 1))
	assert.ErrorIs(t, inv.Products().Delete(ctx, 1), repo.ErrProductNotFound)
	_, err = inv.Products().Update(ctx, p)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestInMemoryCategoryRepository_DeleteDetachesProducts(t *testing.T) {
	ctx := context.Background()
	inv := repo.NewInMemoryInventory()

	cat, err := inv.Categories().Create(ctx, models.Category{Name: "Tools"})
	require.NoError(t, err)
	p, err := inv.Products().Create(ctx, models.Product{Name: "Hammer", CategoryID: intPtr(cat.ID)})
	require.NoError(t, err)

	require.NoError(t, inv.Categories().Delete(ctx, cat.ID))

	got, err := inv.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	_, err = inv.Categories().GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, repo.ErrCategoryNotFound)
	assert.ErrorIs(t, inv.Categories().Delete(ctx, cat.ID), repo.ErrCategoryNotFound)
}

func TestInMemoryProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	inv := repo.NewInMemoryInventory()
	cat, err := inv.Categories().Create(ctx, models.Category{Name: "Tools"})
	require.NoError(t, err)
	_, err = inv.Products().Create(ctx, models.Product{Name: "Hammer", CategoryID: intPtr(cat.ID)})
	require.NoError(t, err)

	got, err := inv.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	*got.CategoryID = 99

	again, err := inv.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, *again.CategoryID)
}
