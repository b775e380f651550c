package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	"github.com/rogerio-castellano/stock-manager/internal/http/router"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	tools := createCategory("Tools")

	w := doRequest(r, http.MethodPost, "/api/v1/products/", managerToken, handler.ProductRequest{
		Name:     "  Hammer ",
		Price:    decimal.RequireFromString("12.5"),
		Quantity: 4,
		Category: intPtr(tools.ID),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.ProductResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Hammer", resp.Name)
	assert.Equal(t, "12.50", resp.Price)
	assert.True(t, resp.LowStock)
	require.NotNil(t, resp.CategoryDetails)
	assert.Equal(t, "Tools", resp.CategoryDetails.Name)
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()

	tests := []struct {
		name           string
		payload        string
		expectedErrors []string
	}{
		{name: "Empty name", payload: `{"name":"  ","price":1}`, expectedErrors: []string{"name"}},
		{name: "Negative price", payload: `{"name":"Mouse","price":-5}`, expectedErrors: []string{"price"}},
		{name: "Too many decimals", payload: `{"name":"Mouse","price":"1.005"}`, expectedErrors: []string{"price"}},
		{name: "Price overflow", payload: `{"name":"Mouse","price":1000000}`, expectedErrors: []string{"price"}},
		{name: "Negative quantity", payload: `{"name":"Keyboard","price":50,"quantity":-1}`, expectedErrors: []string{"quantity"}},
		{name: "Quantity beyond int4", payload: `{"name":"Keyboard","price":50,"quantity":2147483648}`, expectedErrors: []string{"quantity"}},
		{name: "Sold quantity beyond int4", payload: `{"name":"Keyboard","price":50,"sold_quantity":3000000000}`, expectedErrors: []string{"sold_quantity"}},
		{name: "Unknown category", payload: `{"name":"Keyboard","price":50,"category":999}`, expectedErrors: []string{"category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", strings.NewReader(tt.payload))
			req.Header.Set("Authorization", "Bearer "+managerToken)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp []handler.ProductValidationError
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			fields := make([]string, len(resp))
			for i, e := range resp {
				fields[i] = e.Field
			}
			assert.ElementsMatch(t, tt.expectedErrors, fields)
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	r := router.NewRouter()

	badJSON := `{name: "Invalid" price: 100 "}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+managerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandlers_ReaderCannotWrite(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	p := createProduct(models.Product{Name: "Mouse", Price: decimal.RequireFromString("9.99"), Quantity: 10})

	w := doRequest(r, http.MethodPost, "/api/v1/products/", readerToken, handler.ProductRequest{Name: "X", Price: decimal.NewFromInt(1)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d/", p.ID), readerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d/", p.ID), readerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProductsHandler_FilterAndPaginate(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	tools := createCategory("Tools")
	createProduct(models.Product{Name: "Hammer", Price: decimal.NewFromInt(10), Quantity: 10, CategoryID: intPtr(tools.ID)})
	createProduct(models.Product{Name: "Screwdriver", Price: decimal.NewFromInt(5), Quantity: 10, CategoryID: intPtr(tools.ID)})
	createProduct(models.Product{Name: "Notebook", Price: decimal.NewFromInt(2), Quantity: 10})

	w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/products/?category=%d&limit=1", tools.ID), readerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ProductsSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Meta.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Hammer", resp.Data[0].Name)

	w = doRequest(r, http.MethodGet, "/api/v1/products/?limit=0", readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(r, http.MethodGet, "/api/v1/products/?offset=abc", readerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearInventory)
	r := router.NewRouter()
	p := createProduct(models.Product{Name: "Mouse", Price: decimal.RequireFromString("9.99"), Quantity: 10})
	path := fmt.Sprintf("/api/v1/products/%d/", p.ID)

	w := doRequest(r, http.MethodPut, path, adminToken, handler.ProductRequest{
		Name: "Mouse", Price: decimal.RequireFromString("8.50"), Quantity: 0, SoldQuantity: 12,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.ProductResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "8.50", resp.Price)
	assert.Equal(t, 12, resp.SoldQuantity)
	assert.Nil(t, resp.CategoryDetails)

	w = doRequest(r, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(r, http.MethodPut, path, adminToken, handler.ProductRequest{Name: "Mouse", Price: decimal.NewFromInt(1)})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(r, http.MethodGet, "/api/v1/products/abc/", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
