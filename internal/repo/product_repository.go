package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category data operations.
// Deleting a category detaches its products instead of deleting them.
type CategoryRepository interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	Update(ctx context.Context, category models.Category) (models.Category, error)
	Delete(ctx context.Context, id int) error
}
