// Package session keeps per-user authentication state in memory. Records
// are never persisted; a restart puts every user back at the password prompt.
//
// Only users past the password prompt own a record. Locking a session drops
// it, so strangers probing the bot leave nothing behind.
package session

import (
	"sync"
	"time"

	"github.com/set-night/vaultbot/internal/domain"
)

type record struct {
	mu       sync.Mutex
	session  domain.Session
	hasTouch bool
}

// Store owns all session records, keyed by chat user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*record
	now      func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now as the source of activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[int64]*record),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) get(userID int64) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[userID]
	return rec, ok
}

func (s *Store) getOrCreate(userID int64) *record {
	if rec, ok := s.get(userID); ok {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.sessions[userID]; ok {
		return rec
	}

	rec := &record{session: domain.Session{UserID: userID}}
	s.sessions[userID] = rec
	return rec
}

// Touch marks the user as active now.
func (s *Store) Touch(userID int64) {
	rec := s.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.LastActivity = s.now()
	rec.hasTouch = true
}

// IsExpired reports whether the user has no recorded activity or has been
// idle for longer than timeout.
func (s *Store) IsExpired(userID int64, timeout time.Duration) bool {
	rec, ok := s.get(userID)
	if !ok {
		return true
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.hasTouch {
		return true
	}
	return s.now().Sub(rec.session.LastActivity) > timeout
}

// State returns the current state; unknown users wait for a password.
func (s *Store) State(userID int64) domain.AuthState {
	rec, ok := s.get(userID)
	if !ok {
		return domain.StateWaitingPassword
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.session.State
}

// SetState moves the user to state. WaitingPassword is the state of a user
// without a record, so entering it removes the record.
func (s *Store) SetState(userID int64, state domain.AuthState) {
	if state == domain.StateWaitingPassword {
		s.mu.Lock()
		delete(s.sessions, userID)
		s.mu.Unlock()
		return
	}

	rec := s.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.State = state
}

// SetPendingIndex replaces the delete-selection index.
func (s *Store) SetPendingIndex(userID int64, entries []domain.FileRef) {
	copied := make([]domain.FileRef, len(entries))
	copy(copied, entries)

	rec := s.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.PendingIndex = copied
}

// PendingIndex returns a copy of the delete-selection index.
func (s *Store) PendingIndex(userID int64) []domain.FileRef {
	rec, ok := s.get(userID)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.session.PendingIndex == nil {
		return nil
	}
	copied := make([]domain.FileRef, len(rec.session.PendingIndex))
	copy(copied, rec.session.PendingIndex)
	return copied
}

func (s *Store) ClearPendingIndex(userID int64) {
	rec, ok := s.get(userID)
	if !ok {
		return
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.PendingIndex = nil
}

// MarkDeleted tombstones the 0-based position so it cannot be selected twice.
func (s *Store) MarkDeleted(userID int64, pos int) {
	rec, ok := s.get(userID)
	if !ok {
		return
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if pos < 0 || pos >= len(rec.session.PendingIndex) {
		return
	}
	rec.session.PendingIndex[pos].Deleted = true
}

// ResetUploads starts an empty upload batch.
func (s *Store) ResetUploads(userID int64) {
	rec := s.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.UploadBatch = []string{}
}

func (s *Store) AddUpload(userID int64, name string) {
	rec := s.getOrCreate(userID)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.UploadBatch = append(rec.session.UploadBatch, name)
}

func (s *Store) Uploads(userID int64) []string {
	rec, ok := s.get(userID)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	copied := make([]string, len(rec.session.UploadBatch))
	copy(copied, rec.session.UploadBatch)
	return copied
}

func (s *Store) ClearUploads(userID int64) {
	rec, ok := s.get(userID)
	if !ok {
		return
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.UploadBatch = nil
}

// Snapshot returns a copy of the user's session.
func (s *Store) Snapshot(userID int64) (domain.Session, bool) {
	rec, ok := s.get(userID)
	if !ok {
		return domain.Session{}, false
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	sess := rec.session
	sess.PendingIndex = append([]domain.FileRef(nil), rec.session.PendingIndex...)
	sess.UploadBatch = append([]string(nil), rec.session.UploadBatch...)
	return sess, true
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
