package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", payload{Name: "a", Count: 2}, 0))

	var got payload
	ok, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestMemoryMissIsNotAnError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got payload
	ok, err := m.Get(ctx, "absent", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", payload{Name: "a"}, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	var got payload
	ok, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	// the expired entry is evicted by the read, not kept until Clear
	m.mu.RLock()
	_, still := m.items["k"]
	m.mu.RUnlock()
	assert.False(t, still)
}

func TestMemoryDeleteVariadic(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "a", 1, 0))
	require.NoError(t, m.Set(ctx, "b", 2, 0))
	require.NoError(t, m.Delete(ctx, "a", "b", "missing"))

	var got int
	ok, _ := m.Get(ctx, "a", &got)
	assert.False(t, ok)
	ok, _ = m.Get(ctx, "b", &got)
	assert.False(t, ok)
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "a", 1, 0))
	require.NoError(t, m.Clear(ctx))

	var got int
	ok, _ := m.Get(ctx, "a", &got)
	assert.False(t, ok)
}

// A stored value that cannot decode into the destination type is a miss,
// never an error, matching the fail-open read path.
func TestMemoryMalformedValueFailsOpen(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", "just a string", 0))

	var got payload
	ok, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "product_123", EntityKey("product", "123"))
	assert.Equal(t, "all_products", ListKey("products"))
}
