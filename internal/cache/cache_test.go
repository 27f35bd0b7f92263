package cache

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
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type item struct {
	Name string `json:"name"`
}

func newMemoryService(t *testing.T) (*Service, *fakeClock, *MemoryBackend) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	backend := NewMemoryBackend(clock)
	return New(backend, clock, time.Minute), clock, backend
}

func TestService_FetchCachesUntilExpiry(t *testing.T) {
	svc, clock, _ := newMemoryService(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []item{{Name: "first"}}, nil
	}

	var got []item
	require.NoError(t, svc.Fetch(ctx, "events:list", 0, &got, loader))
	require.NoError(t, svc.Fetch(ctx, "events:list", 0, &got, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []item{{Name: "first"}}, got)

	clock.Advance(time.Minute)
	require.NoError(t, svc.Fetch(ctx, "events:list", 0, &got, loader))
	assert.Equal(t, 2, calls, "expired entries are reloaded")

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(2), stats.Sets)
}

func TestService_FetchPropagatesLoaderError(t *testing.T) {
	svc, _, backend := newMemoryService(t)
	boom := errors.New("db down")

	var got []item
	err := svc.Fetch(context.Background(), "k", 0, &got, func(context.Context) (any, error) { return nil, boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, backend.Len(), "failures are not cached")
}

func TestService_FetchDeduplicatesConcurrentLoads(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return item{Name: "shared"}, nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]item, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, svc.Fetch(ctx, "events:1", 0, &results[i], loader))
		}(i)
	}

	require.Eventually(t, func() bool { return svc.Stats().InFlight == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Less(t, calls.Load(), int32(workers))
	for _, r := range results {
		assert.Equal(t, "shared", r.Name)
	}
}

func TestService_InvalidatePattern(t *testing.T) {
	svc, _, backend := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "events:list:1", item{Name: "a"}, 0))
	require.NoError(t, svc.Set(ctx, "events:7", item{Name: "b"}, 0))
	require.NoError(t, svc.Set(ctx, "accommodations:list", item{Name: "c"}, 0))

	require.NoError(t, svc.InvalidatePattern(ctx, "events:*"))

	assert.Equal(t, 1, backend.Len())
	var got item
	ok, err := svc.Get(ctx, "accommodations:list", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), svc.Stats().Invalidations)
}

func TestService_InvalidateDuringLoadIsNotOverwritten(t *testing.T) {
	svc, _, backend := newMemoryService(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	staleLoader := func(context.Context) (any, error) {
		close(started)
		<-release
		return item{Name: "old name"}, nil
	}

	done := make(chan error, 1)
	var stale item
	go func() { done <- svc.Fetch(ctx, "events:list", 0, &stale, staleLoader) }()

	<-started
	require.NoError(t, svc.InvalidatePattern(ctx, "events:*"))

	var fresh item
	freshDone := make(chan error, 1)
	go func() {
		freshDone <- svc.Fetch(ctx, "events:list", 0, &fresh, func(context.Context) (any, error) {
			return item{Name: "new name"}, nil
		})
	}()
	require.NoError(t, <-freshDone, "a read after invalidation does not join the older load")
	assert.Equal(t, "new name", fresh.Name)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "old name", stale.Name)

	var cached item
	ok, err := svc.Get(ctx, "events:list", &cached)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new name", cached.Name, "the older load is not written back")
	assert.Equal(t, 1, backend.Len())
}

func TestService_ReadAfterInvalidatedLoadReloads(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	var stale item
	go func() {
		done <- svc.Fetch(ctx, "events:7", 0, &stale, func(context.Context) (any, error) {
			close(started)
			<-release
			return item{Name: "old name"}, nil
		})
	}()

	<-started
	require.NoError(t, svc.InvalidatePattern(ctx, "events:*"))
	close(release)
	require.NoError(t, <-done)

	var got item
	require.NoError(t, svc.Fetch(ctx, "events:7", 0, &got, func(context.Context) (any, error) {
		return item{Name: "new name"}, nil
	}))
	assert.Equal(t, "new name", got.Name)
}

func TestService_Cleanup(t *testing.T) {
	svc, clock, backend := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "short", item{}, time.Second))
	require.NoError(t, svc.Set(ctx, "long", item{}, time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, svc.Cleanup(ctx))
	assert.Equal(t, 1, backend.Len())
	assert.Equal(t, int64(1), svc.Stats().Evictions)
}

func TestService_NilIsPassThrough(t *testing.T) {
	var svc *Service

	var got item
	err := svc.Fetch(context.Background(), "k", 0, &got, func(context.Context) (any, error) {
		return item{Name: "direct"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got.Name)
	assert.NoError(t, svc.InvalidatePattern(context.Background(), "*"))
	assert.Equal(t, Stats{}, svc.Stats())
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := New(NewRedisBackend(client, "eventcert:"), nil, time.Minute)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return item{Name: "from db"}, nil
	}

	var got item
	require.NoError(t, svc.Fetch(ctx, "accommodations:3", 0, &got, loader))
	require.NoError(t, svc.Fetch(ctx, "accommodations:3", 0, &got, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "from db", got.Name)
	assert.True(t, mr.Exists("eventcert:accommodations:3"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("eventcert:accommodations:3"))

	require.NoError(t, svc.Set(ctx, "accommodations:list", item{}, 0))
	require.NoError(t, svc.Set(ctx, "events:list", item{}, 0))
	require.NoError(t, svc.InvalidatePattern(ctx, "accommodations:*"))
	assert.False(t, mr.Exists("eventcert:accommodations:list"))
	assert.True(t, mr.Exists("eventcert:events:list"))
}
