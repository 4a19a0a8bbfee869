package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestNewRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err := NewRedisStore(context.Background(), mr.Addr(), 0)
	require.NoError(t, err)
	assert.Equal(t, "redis", s.Name())
	require.NoError(t, s.Close())
}

func TestNewRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(context.Background(), addr, 0)
	require.Error(t, err)
	assert.True(t, core.IsUnavailable(err))
}

func TestRedisStore_KV(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	_, err := s.Get(ctx, "missing")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
	vals, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, vals)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.True(t, core.IsStoreNotFound(err))
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 10))
	assert.True(t, mr.TTL("k") > 0)
}

func TestRedisStore_SortedSet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	require.NoError(t, s.ZAdd(ctx, "z", 0.2, "a"))
	require.NoError(t, s.ZAdd(ctx, "z", 0.5, "b"))
	require.NoError(t, s.ZAdd(ctx, "z", 0.1, "d"))

	members, err := s.ZRange(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "d"}, members)

	scored, err := s.ZRangeWithScores(ctx, "z", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []core.ScoredMember{{Member: "b", Score: 0.5}, {Member: "a", Score: 0.2}}, scored)

	_, err = s.ZScore(ctx, "z", "missing")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.ReplaceSortedSet(ctx, "z", []core.ScoredMember{{Member: "x", Score: 1}}))
	members, err = s.ZRange(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, members)

	require.NoError(t, s.ReplaceSortedSet(ctx, "z", nil))
	members, err = s.ZRange(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRedisStore_Hash(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	_, err := s.HGet(ctx, "h", "f")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.HSet(ctx, "h", "f1", []byte("1")))
	require.NoError(t, s.HSet(ctx, "h", "f2", []byte("2")))

	all, err := s.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"f1": []byte("1"), "f2": []byte("2")}, all)
}
