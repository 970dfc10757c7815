package chat

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"batepapo/internal/database"
	"batepapo/internal/model"
	"batepapo/internal/store"
)

var (
	_ ParticipantStore = (*store.SQL)(nil)
	_ MessageStore     = (*store.SQL)(nil)
	_ SweepStore       = (*store.SQL)(nil)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
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

type recordingNotifier struct {
	mu     sync.Mutex
	events []model.Event
}

func (n *recordingNotifier) Publish(event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]string, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

type room struct {
	store    *store.SQL
	clock    *fakeClock
	notifier *recordingNotifier
	registry *Registry
	log      *MessageLog
	sweeper  *Sweeper
}

func newRoom(t *testing.T) *room {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := store.New(db)
	clock := newFakeClock()
	notifier := &recordingNotifier{}
	opts := []Option{WithClock(clock.Now), WithNotifier(notifier)}

	return &room{
		store:    s,
		clock:    clock,
		notifier: notifier,
		registry: NewRegistry(s, opts...),
		log:      NewMessageLog(s, opts...),
		sweeper:  NewSweeper(s, 10*time.Second, 15*time.Second, opts...),
	}
}

func limit(n int) *int { return &n }

func statusCount(messages []model.Message, from, text string) int {
	count := 0
	for _, m := range messages {
		if m.Type == model.TypeStatus && m.From == from && m.Text == text {
			count++
		}
	}
	return count
}
