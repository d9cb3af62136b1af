package activitylog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/set-night/vaultbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 10, 17, 9, 30, 1, 250_000_000, time.UTC)

func TestFormatEntry(t *testing.T) {
	got := FormatEntry(domain.ActivityEntry{ActorID: 42, Message: "Успешный вход", At: at})
	assert.Equal(t, "2026-10-17 09:30:01,250 - [42] Успешный вход", got)

	got = FormatEntry(domain.ActivityEntry{ActorID: 1, Message: "two\nlines", At: at})
	assert.Equal(t, "2026-10-17 09:30:01,250 - [1] two lines", got)
}

func TestFile_AppendAndTail(t *testing.T) {
	ctx := context.Background()
	l, err := NewFile(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)

	text, err := l.Tail(ctx, 4000)
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, l.Append(ctx, domain.ActivityEntry{ActorID: 1, Message: "first", At: at}))
	require.NoError(t, l.Append(ctx, domain.ActivityEntry{ActorID: 2, Message: "second", At: at}))

	text, err = l.Tail(ctx, 4000)
	require.NoError(t, err)
	assert.Equal(t,
		"2026-10-17 09:30:01,250 - [1] first\n2026-10-17 09:30:01,250 - [2] second\n",
		text)

	text, err = l.Tail(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "second\n", text)
}

func TestFile_TailIsRuneSafe(t *testing.T) {
	ctx := context.Background()
	l, err := NewFile(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)

	require.NoError(t, l.Append(ctx, domain.ActivityEntry{ActorID: 1, Message: strings.Repeat("ж", 50), At: at}))

	// "ж" is two bytes and the line ends with "\n"; an even cut lands mid-rune.
	for n := 1; n < 20; n++ {
		text, err := l.Tail(ctx, n)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(text), "tail %d: %q", n, text)
		assert.LessOrEqual(t, len(text), n)
	}
}

func TestFile_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	l, err := NewFile(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, l.Append(ctx, domain.ActivityEntry{ActorID: id, Message: "x", At: at}))
		}(int64(i))
	}
	wg.Wait()

	text, err := l.Tail(ctx, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(text, "\n"))
}

func TestNewFile_BadPath(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing", "log.txt"))
	require.Error(t, err)
}

type memLog struct {
	entries []domain.ActivityEntry
	err     error
}

func (m *memLog) Append(_ context.Context, e domain.ActivityEntry) error {
	m.entries = append(m.entries, e)
	return m.err
}

func (m *memLog) Tail(_ context.Context, _ int) (string, error) {
	return "tail", nil
}

func TestTee(t *testing.T) {
	ctx := context.Background()
	primary := &memLog{}
	okMirror := &memLog{}
	badMirror := &memLog{err: errors.New("telegram down")}

	l := Tee(primary, badMirror, okMirror)
	require.NoError(t, l.Append(ctx, domain.ActivityEntry{ActorID: 1, Message: "m", At: at}))

	assert.Len(t, primary.entries, 1)
	assert.Len(t, badMirror.entries, 1)
	assert.Len(t, okMirror.entries, 1, "a failing mirror does not stop the others")

	text, err := l.Tail(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "tail", text)

	primary.err = errors.New("disk full")
	require.Error(t, l.Append(ctx, domain.ActivityEntry{ActorID: 1, Message: "m", At: at}))
}
