package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCodeStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewMemoryCodeStore(ctx)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "ali@example.com", "AB12CD", 10*time.Minute))
	got, err := store.Get(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", got)

	now = now.Add(11 * time.Minute)
	got, err = store.Get(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Empty(t, got, "expired code must not be returned")

	require.NoError(t, store.Set(ctx, "vali@example.com", "ZZ99ZZ", time.Minute))
	require.NoError(t, store.Delete(ctx, "vali@example.com"))
	got, err = store.Get(ctx, "vali@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}
