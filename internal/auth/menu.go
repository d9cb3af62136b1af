package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/set-night/vaultbot/internal/domain"
)

// LogsTailChars is the number of characters of the activity log shown by
// the logs menu.
const LogsTailChars = 4000

func (m *Machine) showDatabase(_ context.Context, _ Event) Outcome {
	return Outcome{Replies: []Reply{{Text: TextDatabaseSection, Menu: MenuDatabase, Edit: true}}}
}

func (m *Machine) showSettings(_ context.Context, _ Event) Outcome {
	return Outcome{Replies: []Reply{{Text: TextSettingsSection, Menu: MenuSettings, Edit: true}}}
}

func (m *Machine) startUpload(_ context.Context, ev Event) Outcome {
	m.transition(ev.UserID, domain.StateWaitingFile)
	m.sessions.ResetUploads(ev.UserID)
	return reply(TextSendFiles)
}

func (m *Machine) viewFiles(ctx context.Context, ev Event) Outcome {
	// Every re-view replaces the index; a failed or empty listing leaves
	// nothing selectable.
	files, err := m.gateway.List(ctx)
	if err != nil {
		m.sessions.ClearPendingIndex(ev.UserID)
		m.record(ctx, ev.UserID, fmt.Sprintf(logListFailed, err))
		return fail(&domain.StorageError{Op: "list", Err: err}, TextStorageDown)
	}

	if len(files) == 0 {
		m.sessions.ClearPendingIndex(ev.UserID)
		return reply(TextNoFiles)
	}

	index := make([]domain.FileRef, len(files))
	for i, f := range files {
		index[i] = domain.FileRef{ID: f.ID, Name: f.Name}
	}

	m.transition(ev.UserID, domain.StateWaitingDelete)
	m.sessions.SetPendingIndex(ev.UserID, index)
	return reply(renderFileList(files))
}

func renderFileList(files []domain.StoredFile) string {
	var sb strings.Builder
	sb.WriteString(TextFileListHeader)
	sb.WriteString("\n")
	for i, f := range files {
		if f.Size > 0 {
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, f.Name, humanize.Bytes(uint64(f.Size))))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.Name))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(TextFileListFooter)
	return sb.String()
}

func (m *Machine) logout(ctx context.Context, ev Event) Outcome {
	m.transition(ev.UserID, domain.StateWaitingPassword)
	m.record(ctx, ev.UserID, logLogout)
	return reply(TextLoggedOut)
}

func (m *Machine) lockdown(ctx context.Context, ev Event) Outcome {
	m.transition(ev.UserID, domain.StateWaitingPassword)
	m.record(ctx, ev.UserID, logLockdown)
	return reply(TextLockedDown)
}

func (m *Machine) passwordImmutable(_ context.Context, _ Event) Outcome {
	return reply(TextPasswordImmutable)
}

func (m *Machine) showLogs(ctx context.Context, ev Event) Outcome {
	// A rune is at most 4 bytes, so this always covers LogsTailChars characters.
	text, err := m.log.Tail(ctx, LogsTailChars*utf8.UTFMax)
	if err != nil {
		slog.Error("failed to read activity log", "error", err, "user_id", ev.UserID)
		return reply(TextLogsUnavailable)
	}

	text = tailRunes(text, LogsTailChars)
	if strings.TrimSpace(text) == "" {
		return reply(TextLogsEmpty)
	}
	return reply(TextLogsHeader + text)
}

// tailRunes returns the last n characters of s.
func tailRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[len(runes)-n:])
}
