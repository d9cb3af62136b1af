package session

import (
	"sync"
	"testing"
	"time"

	"github.com/set-night/vaultbot/internal/domain"
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
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	return NewStore(WithClock(clock.Now)), clock
}

func TestIsExpired_NoSession(t *testing.T) {
	s, _ := newTestStore()
	assert.True(t, s.IsExpired(42, time.Hour))
}

func TestIsExpired_StateWithoutTouch(t *testing.T) {
	s, _ := newTestStore()
	s.SetState(42, domain.StateActive)
	assert.True(t, s.IsExpired(42, time.Hour))
}

func TestIsExpired_Window(t *testing.T) {
	s, clock := newTestStore()
	timeout := 300 * time.Second

	s.Touch(42)
	assert.False(t, s.IsExpired(42, timeout))

	clock.Advance(300 * time.Second)
	assert.False(t, s.IsExpired(42, timeout), "exactly at the timeout is still active")

	clock.Advance(time.Second)
	assert.True(t, s.IsExpired(42, timeout))

	s.Touch(42)
	assert.False(t, s.IsExpired(42, timeout))
}

func TestState_DefaultsToWaitingPassword(t *testing.T) {
	s, _ := newTestStore()
	assert.Equal(t, domain.StateWaitingPassword, s.State(7))

	s.SetState(7, domain.StateWaitingDelete)
	assert.Equal(t, domain.StateWaitingDelete, s.State(7))
}

func TestPendingIndex_ReplaceAndCopy(t *testing.T) {
	s, _ := newTestStore()
	assert.Nil(t, s.PendingIndex(1))

	entries := []domain.FileRef{{ID: "id7", Name: "a.txt"}, {ID: "id9", Name: "b.txt"}}
	s.SetPendingIndex(1, entries)
	entries[0].Name = "mutated"

	got := s.PendingIndex(1)
	require.Len(t, got, 2)
	assert.Equal(t, "a.txt", got[0].Name)

	got[1].ID = "mutated"
	assert.Equal(t, "id9", s.PendingIndex(1)[1].ID)

	s.SetPendingIndex(1, []domain.FileRef{{ID: "x", Name: "c.txt"}})
	assert.Len(t, s.PendingIndex(1), 1)

	s.ClearPendingIndex(1)
	assert.Nil(t, s.PendingIndex(1))
}

func TestMarkDeleted(t *testing.T) {
	s, _ := newTestStore()
	s.SetPendingIndex(1, []domain.FileRef{{ID: "a"}, {ID: "b"}})

	s.MarkDeleted(1, 1)
	s.MarkDeleted(1, 5)
	s.MarkDeleted(2, 0)

	got := s.PendingIndex(1)
	assert.False(t, got[0].Deleted)
	assert.True(t, got[1].Deleted)
}

func TestUploads(t *testing.T) {
	s, _ := newTestStore()
	s.ResetUploads(1)
	assert.Empty(t, s.Uploads(1))

	s.AddUpload(1, "a.txt")
	s.AddUpload(1, "photo_1.jpg")
	assert.Equal(t, []string{"a.txt", "photo_1.jpg"}, s.Uploads(1))

	s.ResetUploads(1)
	assert.Empty(t, s.Uploads(1))

	s.AddUpload(1, "b.txt")
	s.ClearUploads(1)
	assert.Empty(t, s.Uploads(1))
}

func TestSnapshot(t *testing.T) {
	s, clock := newTestStore()
	_, ok := s.Snapshot(1)
	assert.False(t, ok)

	s.Touch(1)
	s.SetState(1, domain.StateActive)
	s.SetPendingIndex(1, []domain.FileRef{{ID: "a", Name: "a.txt"}})

	snap, ok := s.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), snap.UserID)
	assert.Equal(t, domain.StateActive, snap.State)
	assert.Equal(t, clock.Now(), snap.LastActivity)
	assert.Len(t, snap.PendingIndex, 1)
}

func TestSetState_WaitingPasswordDropsRecord(t *testing.T) {
	s, _ := newTestStore()

	s.SetState(1, domain.StateWaitingPassword)
	assert.Equal(t, 0, s.Len(), "a stranger at the prompt owns no record")

	s.SetState(1, domain.StateActive)
	s.Touch(1)
	s.SetPendingIndex(1, []domain.FileRef{{ID: "a"}})
	s.AddUpload(1, "a.txt")
	assert.Equal(t, 1, s.Len())

	s.SetState(1, domain.StateWaitingPassword)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, domain.StateWaitingPassword, s.State(1))
	assert.Nil(t, s.PendingIndex(1))
	assert.Empty(t, s.Uploads(1))
	assert.True(t, s.IsExpired(1, time.Hour))
}

func TestConcurrentUsers(t *testing.T) {
	s, _ := newTestStore()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Touch(id)
			s.SetState(id, domain.StateActive)
			s.AddUpload(id, "f")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	for i := int64(0); i < 50; i++ {
		assert.Equal(t, domain.StateActive, s.State(i))
		assert.Len(t, s.Uploads(i), 1)
	}
}
