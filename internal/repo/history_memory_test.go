package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestInMemoryHistoryRepository(t *testing.T) {
	ctx := context.Background()
	history := repo.NewInMemoryHistoryRepository()

	for _, p := range []models.StockValuePoint{
		{Day: day(2026, 5, 3), TotalValue: decimal.NewFromInt(30)},
		{Day: day(2026, 5, 1), TotalValue: decimal.NewFromInt(10)},
		{Day: day(2026, 5, 2), TotalValue: decimal.NewFromInt(20)},
	} {
		ok, err := history.Record(ctx, p)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := history.Record(ctx, models.StockValuePoint{Day: day(2026, 5, 2), TotalValue: decimal.NewFromInt(99)})
	require.NoError(t, err)
	assert.False(t, ok, "first write of the day wins")

	points, err := history.Since(ctx, day(2026, 5, 2))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[0].TotalValue.Equal(decimal.NewFromInt(20)))
	assert.True(t, points[1].TotalValue.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 0, points[0].Day.Hour())

	history.Clear()
	points, err = history.Since(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, points)
}
