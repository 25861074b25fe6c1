package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trd-registration/internal/config"
)

func setupRedisGuard(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	db, err := InitServer(context.Background(), config.Redis{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRedis(db, time.Minute), mr
}

func guards(t *testing.T) map[string]Guard {
	g, _ := setupRedisGuard(t)
	return map[string]Guard{
		"redis":  g,
		"memory": NewMemory(time.Minute),
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "DNI:12345678", Key("DNI", "12345678"))
}

func TestGuardLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			key := Key("DNI", "12345678")

			state, err := g.State(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, Idle, state)

			ok, err := g.Acquire(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)

			state, err = g.State(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, Submitting, state)

			ok, err = g.Acquire(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, "second submit while submitting must be rejected")

			require.NoError(t, g.MarkNavigating(ctx, key, time.Minute))
			state, err = g.State(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, Navigating, state)

			ok, err = g.Acquire(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, "second submit while navigating must be rejected")

			require.NoError(t, g.Release(ctx, key))
			state, err = g.State(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, Idle, state)

			ok, err = g.Acquire(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestGuardZeroRedirectDelay(t *testing.T) {
	ctx := context.Background()
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			key := Key("DNI", "87654321")

			ok, err := g.Acquire(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)

			require.NoError(t, g.MarkNavigating(ctx, key, 0))

			state, err := g.State(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, Idle, state)

			ok, err = g.Acquire(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok, "key must be free right after a zero delay")

			err = g.MarkNavigating(ctx, Key("DNI", "00000000"), 0)
			assert.ErrorIs(t, err, ErrNotHeld)
		})
	}
}

func TestRedisGuardZeroDelayHasNoLeftoverKey(t *testing.T) {
	ctx := context.Background()
	g, mr := setupRedisGuard(t)
	key := Key("DNI", "12345678")

	ok, err := g.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, g.MarkNavigating(ctx, key, 0))

	mr.FastForward(24 * time.Hour)

	assert.False(t, mr.Exists(keyPrefix+key))
}

func TestMarkNavigatingRequiresHeldKey(t *testing.T) {
	ctx := context.Background()
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			err := g.MarkNavigating(ctx, "Pasaporte:AB123456", time.Second)
			assert.ErrorIs(t, err, ErrNotHeld)
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := g.Acquire(ctx, Key("DNI", "11111111"))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = g.Acquire(ctx, Key("RUC", "11111111"))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRedisGuardExpires(t *testing.T) {
	ctx := context.Background()
	g, mr := setupRedisGuard(t)
	key := Key("DNI", "12345678")

	ok, err := g.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, g.MarkNavigating(ctx, key, 3*time.Second))

	mr.FastForward(4 * time.Second)

	state, err := g.State(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Idle, state)
}

func TestMemoryGuardExpires(t *testing.T) {
	ctx := context.Background()
	g := NewMemory(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	key := Key("DNI", "12345678")

	ok, err := g.Acquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)

	state, err := g.State(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Idle, state)

	ok, err = g.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryGuardConcurrentAcquire(t *testing.T) {
	ctx := context.Background()
	g := NewMemory(time.Minute)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := g.Acquire(ctx, "DNI:12345678")
			if err == nil && ok {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
}

func TestInitServerUnavailable(t *testing.T) {
	_, err := InitServer(context.Background(), config.Redis{Address: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}
