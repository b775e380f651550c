package repo_test

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	users := repo.NewInMemoryUserRepository()

	alice, err := users.CreateUser(ctx, models.User{Username: "alice", Roles: []string{models.RoleReader}})
	require.NoError(t, err)
	assert.Equal(t, 1, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	_, err = users.CreateUser(ctx, models.User{Username: "alice"})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	bob, err := users.CreateUser(ctx, models.User{Username: "bob"})
	require.NoError(t, err)

	bob.Username = "alice"
	_, err = users.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	alice.Email = "alice@example.com"
	_, err = users.UpdateUser(ctx, alice)
	require.NoError(t, err)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.HasAnyRole(models.RoleReader))

	_, err = users.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
	_, err = users.UpdateUser(ctx, models.User{ID: 42})
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}
