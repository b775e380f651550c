package stats

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthStarts(t *testing.T) {
	got := monthStarts(time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC), 7)

	labels := make([]string, len(got))
	for i, m := range got {
		labels[i] = m.Format(monthLayout)
		assert.Equal(t, 1, m.Day())
	}
	assert.Equal(t, []string{"2025-09", "2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}, labels)
}

func TestComputeStats_StockEvolutionFromHistory(t *testing.T) {
	f := newFixture(t)
	f.product(t, "A", "10.00", 4, 0, nil)

	record := func(day time.Time, value string) {
		_, err := f.history.Record(context.Background(), models.StockValuePoint{
			Day:        day,
			TotalValue: decimal.RequireFromString(value),
		})
		require.NoError(t, err)
	}
	record(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "999.00") // outside the window
	record(time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC), "100.00")
	record(time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC), "120.50")
	record(time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC), "80.00")
	record(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "10.00")

	snap, err := f.svc.ComputeStats(context.Background())
	require.NoError(t, err)

	got := map[string]string{}
	months := []string{}
	for _, p := range snap.Charts.StockEvolution {
		months = append(months, p.Month)
		got[p.Month] = p.Value.StringFixed(2)
	}

	assert.Equal(t, []string{"2026-04", "2026-05", "2026-06", "2026-07", "2026-08", "2026-09", "2026-10"}, months)
	assert.Equal(t, "120.50", got["2026-04"])
	assert.Equal(t, "0.00", got["2026-05"])
	assert.Equal(t, "80.00", got["2026-07"])
	// the current month always shows the live total
	assert.Equal(t, "40.00", got["2026-10"])
}
