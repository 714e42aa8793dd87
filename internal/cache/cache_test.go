package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, "yatube:page:"), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	entry := &Entry{Status: 200, ContentType: "application/json", Body: []byte(`{"posts":[]}`)}
	require.NoError(t, c.Set(ctx, "index:1", entry, 20*time.Second))

	assert.True(t, mr.Exists("yatube:page:index:1"))

	got, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "index:1", &Entry{Status: 200, Body: []byte("a")}, 20*time.Second))

	mr.FastForward(19 * time.Second)
	_, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = c.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_ClearKeepsForeignKeys(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "index:1", &Entry{Status: 200}, time.Minute))
	require.NoError(t, c.Set(ctx, "index:2", &Entry{Status: 200}, time.Minute))
	require.NoError(t, mr.Set("session:abc", "keep"))

	require.NoError(t, c.Clear(ctx))

	_, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("yatube:page:index:2"))
	assert.True(t, mr.Exists("session:abc"))

	// clearing an empty cache is fine
	assert.NoError(t, c.Clear(ctx))
}

func TestRedisCache_CorruptedEntry(t *testing.T) {
	c, mr := setupRedisCache(t)
	require.NoError(t, mr.Set("yatube:page:index:1", "not json"))

	_, ok, err := c.Get(context.Background(), "index:1")

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c := New(context.Background(), addr, "yatube:page:")

	assert.IsType(t, &MemoryCache{}, c)
}

func TestNew_UsesRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := New(context.Background(), "redis://"+mr.Addr()+"/0", "yatube:page:")

	rc, ok := c.(*RedisCache)
	require.True(t, ok)
	t.Cleanup(func() { rc.Close() })
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://localhost:6379")
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCacheWithClock(func() time.Time { return now })
	ctx := context.Background()

	body := []byte("first")
	require.NoError(t, c.Set(ctx, "index:1", &Entry{Status: 200, Body: body}, 20*time.Second))
	body[0] = 'X'

	got, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", string(got.Body))

	now = now.Add(19 * time.Second)
	_, ok, _ = c.Get(ctx, "index:1")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "index:1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "index:1", &Entry{Status: 200}, time.Minute))
	require.NoError(t, c.Clear(ctx))
	_, ok, _ = c.Get(ctx, "index:1")
	assert.False(t, ok)
}
