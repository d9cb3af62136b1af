package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/set-night/vaultbot/internal/activitylog"
	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by the stores.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ActivityStore keeps the activity log in Postgres.
type ActivityStore struct {
	db DBTX
}

func NewActivityStore(db DBTX) *ActivityStore {
	return &ActivityStore{db: db}
}

const insertActivity = `INSERT INTO activity_log (actor_id, message, created_at) VALUES ($1, $2, $3)`

func (s *ActivityStore) Append(ctx context.Context, e domain.ActivityEntry) error {
	if _, err := s.db.Exec(ctx, insertActivity, e.ActorID, e.Message, e.At); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

const selectActivityTail = `SELECT actor_id, message, created_at FROM activity_log ORDER BY id DESC LIMIT $1`

// Tail renders the newest rows in file format, oldest first, keeping at
// most maxBytes bytes from the end.
func (s *ActivityStore) Tail(ctx context.Context, maxBytes int) (string, error) {
	rows, err := s.db.Query(ctx, selectActivityTail, config.ActivityTailRows)
	if err != nil {
		return "", fmt.Errorf("select activity: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ActorID, &e.Message, &e.At); err != nil {
			return "", fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate activity: %w", err)
	}

	return renderTail(entries, maxBytes), nil
}

// renderTail expects entries newest first.
func renderTail(newestFirst []domain.ActivityEntry, maxBytes int) string {
	var lines []string
	size := 0
	for _, e := range newestFirst {
		line := activitylog.FormatEntry(e) + "\n"
		if maxBytes > 0 && size+len(line) > maxBytes {
			break
		}
		size += len(line)
		lines = append(lines, line)
	}

	var b strings.Builder
	b.Grow(size)
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(lines[i])
	}
	return b.String()
}
