package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreObserve(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	first, err := store.Observe(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.Observe(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.Observe(ctx, "def456")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	first, err := store.Observe(ctx, "expiring")
	require.NoError(t, err)
	assert.True(t, first)

	time.Sleep(50 * time.Millisecond)

	again, err := store.Observe(ctx, "expiring")
	require.NoError(t, err)
	assert.True(t, again, "key should be observable again after retention elapses")
}

func TestMemoryStoreZeroRetentionDefaults(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	first, err := store.Observe(ctx, "k")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.Observe(ctx, "k")
	require.NoError(t, err)
	assert.False(t, again)
}
