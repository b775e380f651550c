package repo

import (
	"slices"
	"sync"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

// InMemoryInventory holds products and categories in one place so that
// deleting a category can detach its products, as the database does.
type InMemoryInventory struct {
	mu             sync.RWMutex
	products       []models.Product
	categories     []models.Category
	nextProductID  int
	nextCategoryID int
}

// NewInMemoryInventory creates an empty inventory.
func NewInMemoryInventory() *InMemoryInventory {
	return &InMemoryInventory{
		products:       []models.Product{},
		categories:     []models.Category{},
		nextProductID:  1,
		nextCategoryID: 1,
	}
}

func (inv *InMemoryInventory) Products() *InMemoryProductRepository {
	return &InMemoryProductRepository{inv: inv}
}

func (inv *InMemoryInventory) Categories() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{inv: inv}
}

func (inv *InMemoryInventory) Stats() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{inv: inv}
}

// Clear removes every product and category.
func (inv *InMemoryInventory) Clear() {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.products = []models.Product{}
	inv.categories = []models.Category{}
}

// snapshot copies the current state under the read lock.
func (inv *InMemoryInventory) snapshot() ([]models.Product, []models.Category) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	products := make([]models.Product, len(inv.products))
	for i, p := range inv.products {
		products[i] = cloneProduct(p)
	}
	return products, slices.Clone(inv.categories)
}

// cloneProduct detaches the category pointer from stored state.
func cloneProduct(p models.Product) models.Product {
	if p.CategoryID != nil {
		id := *p.CategoryID
		p.CategoryID = &id
	}
	return p
}

func (inv *InMemoryInventory) categoryIndex(id int) int {
	return slices.IndexFunc(inv.categories, func(c models.Category) bool { return c.ID == id })
}

func (inv *InMemoryInventory) productIndex(id int) int {
	return slices.IndexFunc(inv.products, func(p models.Product) bool { return p.ID == id })
}
