package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

// InMemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type InMemoryCategoryRepository struct {
	inv *InMemoryInventory
}

func (r *InMemoryCategoryRepository) Create(_ context.Context, category models.Category) (models.Category, error) {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	category.ID = r.inv.nextCategoryID
	r.inv.nextCategoryID++
	r.inv.categories = append(r.inv.categories, category)
	return category, nil
}

func (r *InMemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	_, categories := r.inv.snapshot()
	return categories, nil
}

func (r *InMemoryCategoryRepository) GetByID(_ context.Context, id int) (models.Category, error) {
	r.inv.mu.RLock()
	defer r.inv.mu.RUnlock()

	if i := r.inv.categoryIndex(id); i >= 0 {
		return r.inv.categories[i], nil
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Update(_ context.Context, category models.Category) (models.Category, error) {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	i := r.inv.categoryIndex(category.ID)
	if i < 0 {
		return models.Category{}, ErrCategoryNotFound
	}
	r.inv.categories[i] = category
	return category, nil
}

// Delete removes the category and detaches the products that referenced it.
func (r *InMemoryCategoryRepository) Delete(_ context.Context, id int) error {
	r.inv.mu.Lock()
	defer r.inv.mu.Unlock()

	i := r.inv.categoryIndex(id)
	if i < 0 {
		return ErrCategoryNotFound
	}
	r.inv.categories = append(r.inv.categories[:i], r.inv.categories[i+1:]...)

	for j, p := range r.inv.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			r.inv.products[j].CategoryID = nil
		}
	}
	return nil
}
