package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/daily-mystery/internal/game"
	"github.com/tahcohcat/daily-mystery/internal/models"
	"github.com/tahcohcat/daily-mystery/internal/store"
)

const testSession = "t3_session"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	// a Sunday, ISO week 2024-W10
	return &testClock{now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Today() string {
	return game.DateString(c.Now())
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ActivityEvent
}

func (p *recordingPublisher) Publish(_ string, event models.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []models.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ActivityEvent(nil), p.events...)
}

type fixture struct {
	realm     *RealmService
	kv        *store.MemoryStore
	clock     *testClock
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := newTestClock()
	kv := store.NewMemoryStore().WithClock(clock.Now)
	pub := &recordingPublisher{}
	realm := NewRealmService(kv, RealmOptions{Clock: clock.Now, Publisher: pub})
	return &fixture{realm: realm, kv: kv, clock: clock, publisher: pub}
}

func (f *fixture) init(t *testing.T, users ...string) {
	t.Helper()
	for _, u := range users {
		_, err := f.realm.Init(context.Background(), testSession, u, u)
		require.NoError(t, err)
	}
}

func (f *fixture) answer() string {
	return game.SelectDailyMystery(f.clock.Today()).Answer
}

func (f *fixture) guess(t *testing.T, user, guess string) *GuessResponse {
	t.Helper()
	resp, err := f.realm.SubmitGuess(context.Background(), testSession, user, user, guess)
	require.NoError(t, err)
	return resp
}

func (f *fixture) session(t *testing.T) *models.MysterySession {
	t.Helper()
	s, err := f.realm.Sessions().Get(context.Background(), testSession)
	require.NoError(t, err)
	return s
}

func (f *fixture) user(t *testing.T, id string) *models.UserProgress {
	t.Helper()
	u, ok, err := f.realm.Users().GetUser(context.Background(), testSession, id)
	require.NoError(t, err)
	require.True(t, ok, "user %s", id)
	return u
}

func (f *fixture) submit(t *testing.T, user string, n int) *SubmitMysteryResponse {
	t.Helper()
	resp, err := f.realm.SubmitMystery(context.Background(), testSession, user, user, models.SubmitMysteryRequest{
		Answer:   fmt.Sprintf("answer number %d", n),
		Category: "Movie Quote",
		Hints:    []string{"first hint"},
	})
	require.NoError(t, err)
	return resp
}

// barrierStore holds the first two reads of key until both happened, so two
// writers start from the same stale record.
type barrierStore struct {
	store.KeyValueStore
	key     string
	mu      sync.Mutex
	reads   int
	release chan struct{}
}

func newBarrierStore(inner store.KeyValueStore, key string) *barrierStore {
	return &barrierStore{KeyValueStore: inner, key: key, release: make(chan struct{})}
}

func (b *barrierStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key != b.key {
		return b.KeyValueStore.Get(ctx, key)
	}

	b.mu.Lock()
	b.reads++
	n := b.reads
	if n == 2 {
		close(b.release)
	}
	b.mu.Unlock()

	v, ok, err := b.KeyValueStore.Get(ctx, key)
	if n <= 2 {
		<-b.release
	}
	return v, ok, err
}
