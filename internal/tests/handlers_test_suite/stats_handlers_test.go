package handlers_test_suite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	"github.com/rogerio-castellano/stock-manager/internal/http/router"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/rogerio-castellano/stock-manager/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStats struct {
	err error
}

func (f failingStats) ComputeStats(context.Context) (stats.Snapshot, error) {
	return stats.Snapshot{}, f.err
}

func intPtr(v int) *int { return &v }

func TestGetStatsHandler_RequiresToken(t *testing.T) {
	r := router.NewRouter()

	w := doRequest(r, http.MethodGet, "/api/v1/stats/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/stats/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetStatsHandler_Scenario(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	x := createCategory("X")
	createProduct(models.Product{Name: "A", Price: decimal.RequireFromString("10.00"), Quantity: 3, SoldQuantity: 50, CategoryID: intPtr(x.ID)})
	createProduct(models.Product{Name: "B", Price: decimal.RequireFromString("5.00"), Quantity: 0, SoldQuantity: 10, CategoryID: intPtr(x.ID)})
	createProduct(models.Product{Name: "C", Price: decimal.RequireFromString("20.00"), Quantity: 2, SoldQuantity: 5})

	w := doRequest(r, http.MethodGet, "/api/v1/stats/", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `"metrics":{"total_products":3,"total_stock_value":70.00,"low_stock_count":3,"out_of_stock_count":1}`)
	assert.Contains(t, body, `"category_distribution":[{"category__name":"Uncategorized","count":1,"value":40.00},{"category__name":"X","count":2,"value":30.00}]`)
	assert.Contains(t, body, `"top_products":[{"name":"A","sold":50,"revenue":500.00},{"name":"B","sold":10,"revenue":50.00},{"name":"C","sold":5,"revenue":100.00}]`)

	var resp struct {
		Charts struct {
			StockEvolution []struct {
				Month string  `json:"month"`
				Value float64 `json:"value"`
			} `json:"stock_evolution"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Charts.StockEvolution, stats.EvolutionMonths)
	assert.Equal(t, "2026-04", resp.Charts.StockEvolution[0].Month)
	last := resp.Charts.StockEvolution[stats.EvolutionMonths-1]
	assert.Equal(t, "2026-10", last.Month)
	assert.InDelta(t, 70.0, last.Value, 0.001)
}

func TestGetStatsHandler_EmptyStore(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	w := doRequest(r, http.MethodGet, "/api/v1/stats", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"total_products":0`)
	assert.Contains(t, body, `"total_stock_value":0.00`)
	assert.Contains(t, body, `"category_distribution":[]`)
	assert.Contains(t, body, `"top_products":[]`)
}

func TestGetStatsHandler_Idempotent(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	for i := range 7 {
		createProduct(models.Product{Name: fmt.Sprintf("P%d", i), Price: decimal.RequireFromString("1.25"), Quantity: i, SoldQuantity: 3})
	}

	first := doRequest(r, http.MethodGet, "/api/v1/stats/", adminToken, nil)
	second := doRequest(r, http.MethodGet, "/api/v1/stats/", adminToken, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var resp stats.Snapshot
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	assert.Len(t, resp.Charts.TopProducts, stats.TopN)
	assert.Equal(t, "P0", resp.Charts.TopProducts[0].Name)
}

func TestGetStatsHandler_StoreUnavailable(t *testing.T) {
	t.Cleanup(func() { handler.SetStatsService(statsService) })
	r := router.NewRouter()

	handler.SetStatsService(failingStats{err: fmt.Errorf("read inventory: %w", repo.ErrStoreUnavailable)})
	w := doRequest(r, http.MethodGet, "/api/v1/stats/", readerToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	handler.SetStatsService(failingStats{err: errors.New("boom")})
	w = doRequest(r, http.MethodGet, "/api/v1/stats/", readerToken, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
