package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/shopspring/decimal"
)

// InventoryTotals are the table-wide aggregates over every product row.
type InventoryTotals struct {
	ProductCount    int
	StockValue      decimal.Decimal // unrounded sum of price × quantity
	LowStockCount   int
	OutOfStockCount int
}

// CategoryBucket aggregates the products of one category.
// CategoryID is nil for the products without a category.
type CategoryBucket struct {
	CategoryID   *int
	Label        string
	ProductCount int
	StockValue   decimal.Decimal
}

// StatsReader answers the statistics queries against one read view.
//
// CategoryDistribution is ordered by stock value descending, then category
// id ascending with the uncategorized bucket last. TopSellers is ordered by
// sold quantity descending, then product id ascending.
type StatsReader interface {
	Totals(ctx context.Context) (InventoryTotals, error)
	CategoryDistribution(ctx context.Context, limit int) ([]CategoryBucket, error)
	TopSellers(ctx context.Context, limit int) ([]models.Product, error)
}

type StatsRepository interface {
	// ReadConsistent runs fn against a single consistent read view of the inventory.
	ReadConsistent(ctx context.Context, fn func(StatsReader) error) error
}
