package resolve_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relink"
	"github.com/syssam/relink/resolve"
)

// memCache is a minimal in-memory relink.Cache for snapshot tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

var _ relink.Cache = (*memCache)(nil)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := resolve.Resolve(shopEntities(t))
	require.NoError(t, err)

	buf, err := s.EncodeSnapshot()
	require.NoError(t, err)

	restored, err := resolve.DecodeSnapshot(buf)
	require.NoError(t, err)

	// The restored schema is fully linked without re-resolving.
	for _, e := range s.Entities() {
		re := restored.Entity(e.Name)
		require.NotNil(t, re)
		for _, r := range e.Relationships {
			if diff := cmp.Diff(r, re.Relationship(r.Name)); diff != "" {
				t.Errorf("%s.%s mismatch (-want +got):\n%s", e.Name, r.Name, diff)
			}
		}
	}

	_, err = resolve.DecodeSnapshot([]byte("not msgpack"))
	require.Error(t, err)
}

func TestSnapshotStoreLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := newMemCache()

	s, err := resolve.Resolve(shopEntities(t))
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, cache, "shop", 0))

	restored, err := resolve.Load(ctx, cache, "shop")
	require.NoError(t, err)
	assert.Equal(t, "orders", restored.Relationship("Order", "customer").InverseName)
	assert.Equal(t, "customerId", restored.Relationship("Customer", "orders").OwnerField)

	_, err = resolve.Load(ctx, cache, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrSnapshotNotFound))
}
