package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/logger"
)

func newTestCache(ttl time.Duration) *Cache {
	return New(config.CacheConfig{Enabled: true, TTL: ttl}, logger.Nop())
}

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	c := newTestCache(time.Minute)
	var calls int32

	fetch := func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	}

	ctx := context.Background()
	first, err := Fetch(ctx, c, Key("tasks"), fetch)
	require.NoError(t, err)
	second, err := Fetch(ctx, c, Key("tasks"), fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second read within TTL must not fetch")
}

func TestExpiredEntryRefetches(t *testing.T) {
	c := newTestCache(time.Nanosecond)
	var calls int32

	fetch := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	ctx := context.Background()
	_, err := Fetch(ctx, c, "mood", fetch)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	v, err := Fetch(ctx, c, "mood", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidateDropsNamespaceOnly(t *testing.T) {
	c := newTestCache(time.Minute)
	ctx := context.Background()

	var taskCalls, habitCalls int32
	fetchTasks := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&taskCalls, 1)
		return "tasks", nil
	}
	fetchHabits := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&habitCalls, 1)
		return "habits", nil
	}

	_, err := Fetch(ctx, c, Key("tasks", "list"), fetchTasks)
	require.NoError(t, err)
	_, err = Fetch(ctx, c, Key("habits", "list"), fetchHabits)
	require.NoError(t, err)

	c.Invalidate("tasks")

	_, err = Fetch(ctx, c, Key("tasks", "list"), fetchTasks)
	require.NoError(t, err)
	_, err = Fetch(ctx, c, Key("habits", "list"), fetchHabits)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&taskCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&habitCalls), "other namespaces must survive invalidation")
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	c := newTestCache(time.Minute)
	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, "journal", fetch)
			assert.NoError(t, err)
			assert.Equal(t, "value", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent reads of one key must de-duplicate")
}

func TestFetchErrorNotCached(t *testing.T) {
	c := newTestCache(time.Minute)
	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", errors.New("boom")
		}
		return "recovered", nil
	}

	ctx := context.Background()
	_, err := Fetch(ctx, c, "calendar", fetch)
	require.Error(t, err)

	v, err := Fetch(ctx, c, "calendar", fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestDisabledCacheAlwaysFetches(t *testing.T) {
	c := New(config.CacheConfig{Enabled: false}, logger.Nop())
	var calls int32

	fetch := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	ctx := context.Background()
	_, _ = Fetch(ctx, c, "tasks", fetch)
	v, err := Fetch(ctx, c, "tasks", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestClearDropsEverything(t *testing.T) {
	c := newTestCache(time.Minute)
	ctx := context.Background()
	var calls int32

	fetch := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	_, _ = Fetch(ctx, c, Key("tasks", "list"), fetch)
	_, _ = Fetch(ctx, c, Key("habits", "list"), fetch)
	c.Clear()
	_, _ = Fetch(ctx, c, Key("tasks", "list"), fetch)
	_, _ = Fetch(ctx, c, Key("habits", "list"), fetch)

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}
