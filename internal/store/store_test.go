package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/daily-mystery/internal/database"
)

type record struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

// exerciseStore runs the behaviour every backend must share. now is moved
// forward by advance to check expiry.
func exerciseStore(t *testing.T, s KeyValueStore, advance func(time.Duration)) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "plain", "value", time.Time{}))
	v, ok, err := s.Get(ctx, "plain")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	require.NoError(t, s.Set(ctx, "plain", "other", time.Time{}))
	v, _, _ = s.Get(ctx, "plain")
	assert.Equal(t, "other", v)

	in := record{Name: "HODOR", Count: 3, Tags: []string{"a", "b"}}
	require.NoError(t, SetJSON(ctx, s, "json", in, time.Time{}))
	var out record
	ok, err = GetJSON(ctx, s, "json", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	n, err := s.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, s.Set(ctx, "short", "lived", time.Now().Add(time.Minute)))
	_, ok, _ = s.Get(ctx, "short")
	assert.True(t, ok)
	advance(2 * time.Minute)
	_, ok, _ = s.Get(ctx, "short")
	assert.False(t, ok)
}

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
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := NewMemoryStore().WithClock(clock.Now)
	exerciseStore(t, s, clock.Advance)
}

func TestMemoryStorePurgeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := NewMemoryStore().WithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "submissions:s1:week:2024-W10", "[]", clock.Now().AddDate(0, 0, 7)))
	require.NoError(t, s.Set(ctx, "session:s1:state", "{}", time.Time{}))

	purged, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)
	assert.Len(t, s.entries, 2)

	clock.Advance(8 * 24 * time.Hour)

	purged, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Len(t, s.entries, 1)

	_, ok, err := s.Get(ctx, "session:s1:state")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreConcurrentIncr(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Incr(ctx, "n")
		}()
	}
	wg.Wait()

	v, ok, err := s.Get(ctx, "n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "50", v)
}

func TestMemoryStoreIncrOnGarbage(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "n", "not a number", time.Time{}))

	_, err := s.Incr(ctx, "n")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGetJSONReportsCorruptRecords(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "bad", "{not json", time.Time{}))

	var out record
	ok, err := GetJSON(ctx, s, "bad", &out)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	s := NewSQLiteStore(db)
	defer s.Close()

	clock := &fakeClock{now: time.Now()}
	s.now = clock.Now
	exerciseStore(t, s, clock.Advance)

	purged, err := s.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("DAILYMYSTERY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DAILYMYSTERY_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(ctx).Err())

	s := NewRedisStoreFromClient(client)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", "v", time.Time{}))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	n, err := s.Incr(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// redis expires on its own clock; only check the TTL was set
	require.NoError(t, s.Set(ctx, "ttl", "v", time.Now().Add(time.Hour)))
	ttl, err := client.TTL(ctx, "ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}
