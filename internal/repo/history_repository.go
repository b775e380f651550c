package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

// HistoryRepository is the append-only daily log of total stock value.
type HistoryRepository interface {
	// Record stores the point for its day; it reports false when the day is already recorded.
	Record(ctx context.Context, point models.StockValuePoint) (bool, error)
	// Since returns the points on or after from, oldest first.
	Since(ctx context.Context, from time.Time) ([]models.StockValuePoint, error)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
