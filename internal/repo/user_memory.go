package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) find(match func(models.User) bool) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := slices.IndexFunc(r.users, match); i >= 0 {
		u := r.users[i]
		u.Roles = slices.Clone(u.Roles)
		return u, nil
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int) (models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.users, func(existing models.User) bool { return existing.Username == u.Username }) {
		return models.User{}, ErrDuplicatedValueUnique
	}

	now := time.Now().UTC()
	u.ID = len(r.users) + 1
	u.Roles = slices.Clone(u.Roles)
	u.CreatedAt, u.UpdatedAt = now, now
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) UpdateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(existing models.User) bool { return existing.ID == u.ID })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	if slices.ContainsFunc(r.users, func(existing models.User) bool {
		return existing.ID != u.ID && existing.Username == u.Username
	}) {
		return models.User{}, ErrDuplicatedValueUnique
	}

	u.CreatedAt = r.users[i].CreatedAt
	u.UpdatedAt = time.Now().UTC()
	u.Roles = slices.Clone(u.Roles)
	r.users[i] = u
	return u, nil
}
