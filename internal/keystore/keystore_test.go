package keystore_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/internal/keystore"
)

type store interface {
	keystore.KeyStore
	keystore.ConditionalSetter
	keystore.Updater
}

func backends(t *testing.T) map[string]store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]store{
		"memory": keystore.NewMemory(),
		"redis":  keystore.NewRedis(client),
	}
}

func TestKeyStore_Basics(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ok, err := s.Exists(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)

			_, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.SetWithTTL(ctx, "k", "v1", time.Hour))

			val, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "v1", val)

			deleted, err := s.Delete(ctx, "k")
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = s.Delete(ctx, "k")
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	}
}

func TestKeyStore_SetIfAbsent(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			won, err := s.SetIfAbsent(ctx, "alias", "first", time.Hour)
			require.NoError(t, err)
			assert.True(t, won)

			won, err = s.SetIfAbsent(ctx, "alias", "second", time.Hour)
			require.NoError(t, err)
			assert.False(t, won)

			val, _, err := s.Get(ctx, "alias")
			require.NoError(t, err)
			assert.Equal(t, "first", val)
		})
	}
}

func TestKeyStore_SetIfAbsentConcurrent(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var wins atomic.Int32
			var wg sync.WaitGroup
			for range 20 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					won, err := s.SetIfAbsent(ctx, "race", "x", time.Hour)
					if err == nil && won {
						wins.Add(1)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), wins.Load())
		})
	}
}

func TestKeyStore_Update(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			found, err := s.Update(ctx, "missing", func(string) (string, bool, error) {
				t.Fatal("fn must not run for absent keys")
				return "", false, nil
			})
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.SetWithTTL(ctx, "k", "a", time.Hour))

			found, err = s.Update(ctx, "k", func(cur string) (string, bool, error) {
				return cur + "b", true, nil
			})
			require.NoError(t, err)
			assert.True(t, found)

			found, err = s.Update(ctx, "k", func(cur string) (string, bool, error) {
				return "ignored", false, nil
			})
			require.NoError(t, err)
			assert.True(t, found)

			val, _, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "ab", val)

			boom := errors.New("boom")
			_, err = s.Update(ctx, "k", func(string) (string, bool, error) {
				return "", false, boom
			})
			require.ErrorIs(t, err, boom)
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := keystore.NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, m.SetWithTTL(ctx, "short", "v", time.Minute))
	require.NoError(t, m.SetWithTTL(ctx, "forever", "v", 0))
	assert.Equal(t, 2, m.Len())

	now = now.Add(time.Minute)

	ok, err := m.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	won, err := m.SetIfAbsent(ctx, "short", "again", time.Minute)
	require.NoError(t, err)
	assert.True(t, won, "expired keys can be claimed again")

	ok, err = m.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_UpdateKeepsTTL(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := keystore.NewRedis(client)
	ctx := context.Background()

	require.NoError(t, s.SetWithTTL(ctx, "k", "1", time.Minute))
	_, err := s.Update(ctx, "k", func(string) (string, bool, error) {
		return "2", true, nil
	})
	require.NoError(t, err)

	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(time.Minute)
	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Unavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	s := keystore.NewRedis(client)

	mr.Close()

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, s.Ping(context.Background()))
}
