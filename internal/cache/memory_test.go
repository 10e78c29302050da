package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte("computed"), nil
	}

	got, err := c.GetOrSet(ctx, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)

	got, err = c.GetOrSet(ctx, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), got)
	assert.Equal(t, 1, calls, "second call must hit the cache")
}

func TestMemoryCacheGetOrSetError(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	wantErr := errors.New("boom")
	_, err := c.GetOrSet(context.Background(), "k", time.Minute, func() ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Clear(ctx))

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheGetReturnsCopy(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("abc"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
