package repo

import (
	"context"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
}
