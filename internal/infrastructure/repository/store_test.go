package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/internal/infrastructure/database"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) domainRepo.KeyValueStore {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "shopflow.db"), logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	store := NewGormStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func newRedisTestStore(t *testing.T) domainRepo.KeyValueStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.FlushDB(ctx).Err())

	store := NewRedisStore(client)
	t.Cleanup(func() { store.Close() })
	return store
}

var storeBackends = map[string]func(t *testing.T) domainRepo.KeyValueStore{
	"memory": func(t *testing.T) domainRepo.KeyValueStore { return NewMemoryStore() },
	"sqlite": newSQLiteStore,
	"redis":  newRedisTestStore,
}

func TestKeyValueStore(t *testing.T) {
	for name, open := range storeBackends {
		t.Run(name, func(t *testing.T) {
			t.Run("get missing", func(t *testing.T) {
				value, err := open(t).Get(context.Background(), "missing")
				require.NoError(t, err)
				assert.Nil(t, value)
			})

			t.Run("set overwrite delete", func(t *testing.T) {
				ctx := context.Background()
				store := open(t)

				require.NoError(t, store.Set(ctx, "k", []byte(`"one"`), 0))
				require.NoError(t, store.Set(ctx, "k", []byte(`"two"`), 0))
				value, err := store.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, `"two"`, string(value))

				require.NoError(t, store.Delete(ctx, "k"))
				value, err = store.Get(ctx, "k")
				require.NoError(t, err)
				assert.Nil(t, value)
			})

			t.Run("update writes every key", func(t *testing.T) {
				ctx := context.Background()
				store := open(t)
				require.NoError(t, store.Set(ctx, "a", []byte("1"), 0))

				err := store.Update(ctx, []string{"a", "b"}, func(current map[string][]byte) (map[string][]byte, error) {
					assert.Equal(t, "1", string(current["a"]))
					_, hasB := current["b"]
					assert.False(t, hasB)
					return map[string][]byte{"a": []byte("2"), "b": []byte("3")}, nil
				})
				require.NoError(t, err)

				a, _ := store.Get(ctx, "a")
				b, _ := store.Get(ctx, "b")
				assert.Equal(t, "2", string(a))
				assert.Equal(t, "3", string(b))
			})

			t.Run("update error writes nothing", func(t *testing.T) {
				ctx := context.Background()
				store := open(t)
				require.NoError(t, store.Set(ctx, "a", []byte("1"), 0))

				boom := errors.New("boom")
				err := store.Update(ctx, []string{"a"}, func(map[string][]byte) (map[string][]byte, error) {
					return nil, boom
				})
				assert.ErrorIs(t, err, boom)

				a, _ := store.Get(ctx, "a")
				assert.Equal(t, "1", string(a))
			})

			t.Run("concurrent updates do not lose writes", func(t *testing.T) {
				ctx := context.Background()
				store := open(t)

				var (
					wg        sync.WaitGroup
					mu        sync.Mutex
					succeeded int
				)
				for i := 0; i < 8; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						err := store.Update(ctx, []string{"counter"}, func(current map[string][]byte) (map[string][]byte, error) {
							n, _ := strconv.Atoi(string(current["counter"]))
							return map[string][]byte{"counter": []byte(strconv.Itoa(n + 1))}, nil
						})
						if err == nil {
							mu.Lock()
							succeeded++
							mu.Unlock()
						} else {
							assert.ErrorIs(t, err, domainRepo.ErrConcurrentUpdate)
						}
					}()
				}
				wg.Wait()

				value, err := store.Get(ctx, "counter")
				require.NoError(t, err)
				assert.Equal(t, strconv.Itoa(succeeded), string(value))
			})
		})
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	value, _ := store.Get(ctx, "k")
	assert.Equal(t, "v", string(value))

	time.Sleep(40 * time.Millisecond)
	value, _ = store.Get(ctx, "k")
	assert.Nil(t, value)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	raw := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", raw, 0))
	raw[0] = 'x'

	value, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(value))
}
