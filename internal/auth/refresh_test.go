package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRefreshStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewInMemoryRefreshStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "abc", 1, time.Hour))
	ok, err := store.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Hour)
	ok, err = store.Exists(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	store.Cleanup()
	assert.Empty(t, store.entries)
}
