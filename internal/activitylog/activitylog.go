// Package activitylog records operator actions as an append-only text log.
package activitylog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/set-night/vaultbot/internal/domain"
)

// TimeLayout matches the timestamp prefix of every line.
const TimeLayout = "2006-01-02 15:04:05,000"

// Log is an append-only, tail-readable activity sink.
type Log interface {
	Sink
	Tail(ctx context.Context, maxBytes int) (string, error)
}

// Sink receives activity entries.
type Sink interface {
	Append(ctx context.Context, entry domain.ActivityEntry) error
}

// FormatEntry renders one log line without the trailing newline.
func FormatEntry(e domain.ActivityEntry) string {
	msg := strings.ReplaceAll(e.Message, "\n", " ")
	return fmt.Sprintf("%s - [%d] %s", e.At.Format(TimeLayout), e.ActorID, msg)
}

// trimToValidStart drops bytes at the start of b that belong to a rune cut
// in half by a byte-offset read.
func trimToValidStart(b []byte) []byte {
	for i := 0; i < len(b) && i < utf8.UTFMax; i++ {
		if utf8.RuneStart(b[i]) {
			return b[i:]
		}
	}
	if len(b) > 0 && !utf8.RuneStart(b[0]) {
		return nil
	}
	return b
}

type tee struct {
	primary Log
	mirrors []Sink
}

// Tee appends to primary and forwards every entry to the mirrors. Mirror
// failures are logged and never fail the append. Tail reads from primary.
func Tee(primary Log, mirrors ...Sink) Log {
	return &tee{primary: primary, mirrors: mirrors}
}

func (t *tee) Append(ctx context.Context, e domain.ActivityEntry) error {
	err := t.primary.Append(ctx, e)
	for _, m := range t.mirrors {
		if mErr := m.Append(ctx, e); mErr != nil {
			slog.Warn("activity mirror failed", "error", mErr, "user_id", e.ActorID)
		}
	}
	return err
}

func (t *tee) Tail(ctx context.Context, maxBytes int) (string, error) {
	return t.primary.Tail(ctx, maxBytes)
}
