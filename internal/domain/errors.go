package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailure        = errors.New("invalid password")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnsupportedPayload = errors.New("unsupported payload")
	ErrInvalidSelection   = errors.New("invalid file selection")
	ErrStorage            = errors.New("storage failure")
)

type SelectionReason string

const (
	ReasonNotANumber       SelectionReason = "not_a_number"
	ReasonOutOfRange       SelectionReason = "out_of_range"
	ReasonAlreadyDeleted   SelectionReason = "already_deleted"
	ReasonUnsupportedInput SelectionReason = "unsupported_input"
)

// SelectionError is returned when a delete-by-number input cannot be
// resolved against the pending index.
type SelectionError struct {
	Reason SelectionReason
	Input  string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid file selection %q: %s", e.Input, e.Reason)
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// StorageError wraps a failed storage or download operation.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
