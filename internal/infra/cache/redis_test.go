package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidash/unidash/internal/config"
)

func newTestCache(t *testing.T) (*ViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewViewCache(rdb, time.Minute), mr
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := New(&config.Config{Redis: config.RedisCfg{Addr: mr.Addr(), PoolSize: 2}})
	require.NoError(t, err)
	assert.NoError(t, Close(rdb))

	addr := mr.Addr()
	mr.Close()
	_, err = New(&config.Config{Redis: config.RedisCfg{Addr: addr}})
	assert.Error(t, err)
}

func TestViewCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.0", gen)

	_, ok, err := c.GetView(ctx, 1, gen, "raw")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetView(ctx, 1, gen, "raw", []byte(`{"data":[]}`)))
	b, ok, err := c.GetView(ctx, 1, gen, "raw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"data":[]}`, string(b))

	assert.Equal(t, time.Minute, mr.TTL("unidash:view:1:0.0:raw"))
	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetView(ctx, 1, gen, "raw")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestViewCache_InvalidateView(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	before1, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	before2, err := c.Generation(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, c.SetView(ctx, 1, before1, "raw", []byte("x")))
	require.NoError(t, c.SetView(ctx, 2, before2, "raw", []byte("y")))

	require.NoError(t, c.InvalidateView(ctx, 1))

	after1, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", after1)
	_, ok, err := c.GetView(ctx, 1, after1, "raw")
	require.NoError(t, err)
	assert.False(t, ok)

	after2, err := c.Generation(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, before2, after2)
	_, ok, err = c.GetView(ctx, 2, after2, "raw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestViewCache_InvalidateViews(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, c.InvalidateView(ctx, 12))
	require.NoError(t, c.InvalidateViews(ctx))
	require.NoError(t, c.InvalidateViews(ctx))

	gen, err := c.Generation(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "2.1", gen)
	gen, err = c.Generation(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "2.0", gen)
	assert.True(t, mr.Exists("other:key"))
}

// A composition read before a write is filed under the stamp taken before
// the write, which later readers no longer use.
func TestViewCache_WriteDuringRead(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	stale, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateView(ctx, 1))
	require.NoError(t, c.SetView(ctx, 1, stale, "raw", []byte("stale")))

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	_, ok, err := c.GetView(ctx, 1, gen, "raw")
	require.NoError(t, err)
	assert.False(t, ok)
}
