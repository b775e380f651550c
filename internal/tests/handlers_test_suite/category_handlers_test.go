package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	"github.com/rogerio-castellano/stock-manager/internal/http/router"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandlers_CRUD(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	w := doRequest(r, http.MethodPost, "/api/v1/categories/", managerToken, handler.CategoryRequest{Name: "Office", Icon: "briefcase"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created handler.CategoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "Office", created.Name)

	path := fmt.Sprintf("/api/v1/categories/%d/", created.ID)
	w = doRequest(r, http.MethodPut, path, managerToken, handler.CategoryRequest{Name: "Office supplies", Description: "Paper and pens"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/categories", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []handler.CategoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "Paper and pens", all[0].Description)

	w = doRequest(r, http.MethodDelete, path, managerToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(r, http.MethodGet, path, readerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandlers_Validation(t *testing.T) {
	r := router.NewRouter()

	w := doRequest(r, http.MethodPost, "/api/v1/categories/", adminToken, handler.CategoryRequest{Name: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/categories/", readerToken, handler.CategoryRequest{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteCategory_ProductsBecomeUncategorized(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	c := createCategory("Seasonal")
	createProduct(models.Product{Name: "Sled", Price: decimal.NewFromInt(30), Quantity: 1, CategoryID: intPtr(c.ID)})

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d/", c.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/stats/", readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category_distribution":[{"category__name":"Uncategorized","count":1,"value":30.00}]`)
}
