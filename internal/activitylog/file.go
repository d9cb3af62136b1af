package activitylog

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/set-night/vaultbot/internal/domain"
)

// File appends lines to a text file.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open activity log %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close activity log %s: %w", path, err)
	}
	return &File{path: path}, nil
}

func (l *File) Append(_ context.Context, e domain.ActivityEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEntry(e) + "\n"); err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

// Tail returns at most the last maxBytes bytes of the log.
func (l *File) Tail(_ context.Context, maxBytes int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat activity log: %w", err)
	}

	offset := info.Size() - int64(maxBytes)
	if offset < 0 || maxBytes <= 0 {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek activity log: %w", err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read activity log: %w", err)
	}
	if offset > 0 {
		data = trimToValidStart(data)
	}
	return string(data), nil
}
