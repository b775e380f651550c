package repo

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	inv *InMemoryInventory
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *pf.CategoryID) {
		return false
	}
	return true
}

func clamp(v, low, high int) int {
	return max(low, min(v, high))
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	products, _ := r.inv.snapshot()

	filtered := []models.Product{}
	for _, p := range products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	if product.CategoryID != nil && r.inv.categoryIndex(*product.CategoryID) < 0 {
		return models.Product{}, ErrCategoryNotFound
	}

	product.ID = r.inv.nextProductID
	r.inv.nextProductID++
	r.inv.products = append(r.inv.products, cloneProduct(product))
	return product, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.inv.mu.RLock()
	defer r.inv.mu.RUnlock()

	if i := r.inv.productIndex(id); i >= 0 {
		return cloneProduct(r.inv.products[i]), nil
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	i := r.inv.productIndex(product.ID)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	if product.CategoryID != nil && r.inv.categoryIndex(*product.CategoryID) < 0 {
		return models.Product{}, ErrCategoryNotFound
	}

	r.inv.products[i] = cloneProduct(product)
	return product, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	i := r.inv.productIndex(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.inv.products = append(r.inv.products[:i], r.inv.products[i+1:]...)
	return nil
}
