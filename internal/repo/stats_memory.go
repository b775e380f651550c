package repo

import (
	"context"
	"slices"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryStatsRepository aggregates over a copy of the in-memory inventory.
type InMemoryStatsRepository struct {
	inv *InMemoryInventory
}

// ReadConsistent copies the inventory under one read lock and runs fn over the copy.
func (r *InMemoryStatsRepository) ReadConsistent(ctx context.Context, fn func(StatsReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	products, categories := r.inv.snapshot()
	return fn(memoryStatsView{products: products, categories: categories})
}

type memoryStatsView struct {
	products   []models.Product
	categories []models.Category
}

func (v memoryStatsView) Totals(_ context.Context) (InventoryTotals, error) {
	t := InventoryTotals{ProductCount: len(v.products), StockValue: decimal.Zero}
	for _, p := range v.products {
		t.StockValue = t.StockValue.Add(p.StockValue())
		if p.LowStock() {
			t.LowStockCount++
		}
		if p.OutOfStock() {
			t.OutOfStockCount++
		}
	}
	return t, nil
}

func (v memoryStatsView) CategoryDistribution(_ context.Context, limit int) ([]CategoryBucket, error) {
	names := lo.SliceToMap(v.categories, func(c models.Category) (int, string) {
		return c.ID, c.Name
	})

	buckets := map[int]*CategoryBucket{}
	var uncategorized *CategoryBucket
	for _, p := range v.products {
		var b *CategoryBucket
		name, known := "", false
		if p.CategoryID != nil {
			name, known = names[*p.CategoryID]
		}
		switch {
		case !known:
			if uncategorized == nil {
				uncategorized = &CategoryBucket{Label: models.UncategorizedLabel, StockValue: decimal.Zero}
			}
			b = uncategorized
		case buckets[*p.CategoryID] == nil:
			id := *p.CategoryID
			b = &CategoryBucket{CategoryID: &id, Label: name, StockValue: decimal.Zero}
			buckets[id] = b
		default:
			b = buckets[*p.CategoryID]
		}
		b.ProductCount++
		b.StockValue = b.StockValue.Add(p.StockValue())
	}

	result := make([]CategoryBucket, 0, len(buckets)+1)
	for _, b := range buckets {
		result = append(result, *b)
	}
	if uncategorized != nil {
		result = append(result, *uncategorized)
	}

	slices.SortFunc(result, func(a, b CategoryBucket) int {
		if c := b.StockValue.Cmp(a.StockValue); c != 0 {
			return c
		}
		switch {
		case a.CategoryID == nil:
			return 1
		case b.CategoryID == nil:
			return -1
		}
		return *a.CategoryID - *b.CategoryID
	})

	return result[:min(limit, len(result))], nil
}

func (v memoryStatsView) TopSellers(_ context.Context, limit int) ([]models.Product, error) {
	sorted := slices.Clone(v.products)
	slices.SortFunc(sorted, func(a, b models.Product) int {
		if a.SoldQuantity != b.SoldQuantity {
			return b.SoldQuantity - a.SoldQuantity
		}
		return a.ID - b.ID
	})
	return sorted[:min(limit, len(sorted))], nil
}
