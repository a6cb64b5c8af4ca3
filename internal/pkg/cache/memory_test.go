package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore(t *testing.T, maxEntries int) Store {
	t.Helper()
	store := NewMemoryStore(maxEntries)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := newTestMemoryStore(t, 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestMemoryStore_GetMiss(t *testing.T) {
	store := newTestMemoryStore(t, 100)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_GetExpired(t *testing.T) {
	store := newTestMemoryStore(t, 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := newTestMemoryStore(t, 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := newTestMemoryStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute))
	}

	// Touch k0 so k1 becomes the eviction candidate.
	_, err := store.Get(ctx, "k0")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "k3", []byte("v"), time.Minute))

	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = store.Get(ctx, "k0")
	assert.NoError(t, err)
}

func TestMemoryStore_ValueIsolation(t *testing.T) {
	store := newTestMemoryStore(t, 100)
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, store.Set(ctx, "k", original, time.Minute))

	// Mutating the slice handed to Set must not affect the stored value.
	original[0] = 'X'

	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), v)

	// Nor must mutating the slice handed back by Get.
	v[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryStore_UpdateExisting(t *testing.T) {
	store := newTestMemoryStore(t, 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v1"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("v2"), time.Minute))

	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
}
