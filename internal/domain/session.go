package domain

import (
	"time"
)

// AuthState is the position of a user in the authentication flow.
// The zero value is StateWaitingPassword, so a user without a session
// starts at the password prompt.
type AuthState int

const (
	StateWaitingPassword AuthState = iota
	StateActive
	StateWaitingFile
	StateWaitingDelete
)

func (s AuthState) String() string {
	switch s {
	case StateWaitingPassword:
		return "waiting_password"
	case StateActive:
		return "active"
	case StateWaitingFile:
		return "waiting_file"
	case StateWaitingDelete:
		return "waiting_delete"
	default:
		return "unknown"
	}
}

// Authenticated reports whether the state is behind the password gate.
func (s AuthState) Authenticated() bool {
	return s != StateWaitingPassword
}

type Session struct {
	UserID       int64
	State        AuthState
	LastActivity time.Time
	PendingIndex []FileRef
	UploadBatch  []string
}

// FileRef is one position of the pending delete index.
type FileRef struct {
	ID      string
	Name    string
	Deleted bool
}
