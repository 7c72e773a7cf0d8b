package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (IRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client), mr
}

func TestRedis_SetGetDelete(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v", time.Minute))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := r.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, err = r.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, r.Set(ctx, "k2", "v", 0))
	require.NoError(t, r.Delete(ctx, "k2"))
	ok, err = r.Exists(ctx, "k2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Ping(t *testing.T) {
	r, _ := setupRedis(t)
	assert.NoError(t, r.Ping(context.Background()))
}

func TestNewRedis_Validation(t *testing.T) {
	_, err := NewRedis(RedisConfig{Port: 6379})
	assert.ErrorIs(t, err, ErrHostRequired)

	_, err = NewRedis(RedisConfig{Host: "localhost", Port: 0})
	assert.ErrorIs(t, err, ErrInvalidPort)
}
