package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	repo "github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

func toProductResponse(p models.Product, categories map[int]models.Category) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price.StringFixed(2),
		Quantity:     p.Quantity,
		SoldQuantity: p.SoldQuantity,
		Category:     p.CategoryID,
		LowStock:     p.LowStock(),
	}
	if p.CategoryID != nil {
		if c, ok := categories[*p.CategoryID]; ok {
			details := toCategoryResponse(c)
			resp.CategoryDetails = &details
		}
	}
	return resp
}

func productFromRequest(id int, req ProductRequest) models.Product {
	return models.Product{
		ID:           id,
		Name:         req.Name,
		Price:        req.Price,
		Quantity:     req.Quantity,
		SoldQuantity: req.SoldQuantity,
		CategoryID:   req.Category,
	}
}

func categoriesByID(r *http.Request) (map[int]models.Category, error) {
	categories, err := categoryRepo.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(categories, func(c models.Category) int { return c.ID }), nil
}

func writeProduct(w http.ResponseWriter, r *http.Request, status int, p models.Product) {
	categories, err := categoriesByID(r)
	if err != nil {
		logrus.WithError(err).Error("fetch categories")
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, toProductResponse(p, categories))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog. Requires the Manager or Admin role.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 403 {string} string "Forbidden"
// @Router /api/v1/products/ [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateProduct(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	created, err := productRepo.Create(r.Context(), productFromRequest(0, req))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			writeJSON(w, http.StatusBadRequest, []ProductValidationError{{Field: "category", Description: "category does not exist"}})
			return
		}
		logrus.WithError(err).Error("create product")
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	writeProduct(w, r, http.StatusCreated, created)
}

// GetProductsHandler godoc
// @Summary List products
// @Description Lists products with optional name and category filters and pagination.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name"
// @Param category query int false "Filter by category ID"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /api/v1/products/ [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{Name: q.Get("name")}
	var errCategory, errOffset, errLimit error
	filter.CategoryID, errCategory = parseIntPtr(q.Get("category"))
	filter.Offset, errOffset = parseIntPtr(q.Get("offset"))
	filter.Limit, errLimit = parseIntPtr(q.Get("limit"))
	if err := errors.Join(errCategory, errOffset, errLimit); err != nil {
		http.Error(w, "invalid query", http.StatusBadRequest)
		return
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		logrus.WithError(err).Error("filter products")
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	categories, err := categoriesByID(r)
	if err != nil {
		logrus.WithError(err).Error("fetch categories")
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ProductsSearchResult{
		Data: lo.Map(products, func(p models.Product, _ int) ProductResponse {
			return toProductResponse(p, categories)
		}),
		Meta: Meta{TotalCount: total},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/v1/products/{id}/ [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("get product")
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	writeProduct(w, r, http.StatusOK, product)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/v1/products/{id}/ [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if errs := validateProduct(&req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	updated, err := productRepo.Update(r.Context(), productFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrCategoryNotFound):
			writeJSON(w, http.StatusBadRequest, []ProductValidationError{{Field: "category", Description: "category does not exist"}})
		default:
			logrus.WithError(err).Error("update product")
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	writeProduct(w, r, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/v1/products/{id}/ [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("delete product")
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
