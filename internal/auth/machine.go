// Package auth implements the password gate and the per-user menu flow.
//
// Every inbound event is resolved in three steps: /start always resets to
// the password prompt, an authenticated but idle session is auto-locked and
// the event dropped, and otherwise the handler registered for
// (state, event kind) runs.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/set-night/vaultbot/internal/domain"
	"github.com/set-night/vaultbot/internal/session"
)

// Gateway is the remote file store.
type Gateway interface {
	Upload(ctx context.Context, data []byte, name string) error
	List(ctx context.Context) ([]domain.StoredFile, error)
	Delete(ctx context.Context, id string) error
}

// ActivityLog records operator actions and returns the most recent ones.
type ActivityLog interface {
	Append(ctx context.Context, entry domain.ActivityEntry) error
	Tail(ctx context.Context, maxBytes int) (string, error)
}

// Downloader fetches attachment content from the chat platform.
type Downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

type EventKind int

const (
	EventStart EventKind = iota + 1
	EventText
	EventMenu
	EventAttachment
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventText:
		return "text"
	case EventMenu:
		return "menu"
	case EventAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// MenuAction is the callback data carried by menu buttons.
type MenuAction string

const (
	ActionDatabase MenuAction = "db"
	ActionSave     MenuAction = "save"
	ActionView     MenuAction = "view"
	ActionSettings MenuAction = "settings"
	ActionLogout   MenuAction = "logout"
	ActionNoop     MenuAction = "nop"
	ActionLockdown MenuAction = "lockdown"
	ActionLogs     MenuAction = "logs"
)

type Event struct {
	UserID     int64
	Kind       EventKind
	Text       string
	Action     MenuAction
	Attachment domain.Attachment
}

type Menu int

const (
	MenuNone Menu = iota
	MenuMain
	MenuDatabase
	MenuSettings
)

// Reply is one outbound message. Edit asks the transport to replace the
// message the menu was opened from instead of sending a new one.
type Reply struct {
	Text string
	Menu Menu
	Edit bool
}

// Outcome is the result of one event. Err classifies a recovered failure
// and is nil on success; the replies are already user-presentable.
type Outcome struct {
	Replies []Reply
	Err     error
}

func reply(text string) Outcome {
	return Outcome{Replies: []Reply{{Text: text}}}
}

func replyMenu(text string, menu Menu) Outcome {
	return Outcome{Replies: []Reply{{Text: text, Menu: menu}}}
}

func fail(err error, text string) Outcome {
	return Outcome{Replies: []Reply{{Text: text}}, Err: err}
}

type Config struct {
	Password   string
	UnlockCode string
	Timeout    time.Duration
}

type handlerFunc func(ctx context.Context, ev Event) Outcome

type Machine struct {
	cfg        Config
	sessions   *session.Store
	gateway    Gateway
	log        ActivityLog
	downloader Downloader

	table       map[domain.AuthState]map[EventKind]handlerFunc
	menuActions map[MenuAction]handlerFunc
}

type Deps struct {
	Sessions   *session.Store
	Gateway    Gateway
	Log        ActivityLog
	Downloader Downloader
}

func NewMachine(cfg Config, deps Deps) *Machine {
	m := &Machine{
		cfg:        cfg,
		sessions:   deps.Sessions,
		gateway:    deps.Gateway,
		log:        deps.Log,
		downloader: deps.Downloader,
	}

	m.table = map[domain.AuthState]map[EventKind]handlerFunc{
		domain.StateWaitingPassword: {
			EventText:       m.checkPassword,
			EventMenu:       m.reprompt,
			EventAttachment: m.reprompt,
		},
		domain.StateActive: {
			EventText:       m.menuHint,
			EventMenu:       m.menu,
			EventAttachment: m.menuHint,
		},
		domain.StateWaitingFile: {
			EventText:       m.finishUpload,
			EventMenu:       m.menu,
			EventAttachment: m.upload,
		},
		domain.StateWaitingDelete: {
			EventText:       m.deleteByNumber,
			EventMenu:       m.menu,
			EventAttachment: m.rejectSelection,
		},
	}

	m.menuActions = map[MenuAction]handlerFunc{
		ActionDatabase: m.showDatabase,
		ActionSave:     m.startUpload,
		ActionView:     m.viewFiles,
		ActionSettings: m.showSettings,
		ActionLogout:   m.logout,
		ActionNoop:     m.passwordImmutable,
		ActionLockdown: m.lockdown,
		ActionLogs:     m.showLogs,
	}

	return m
}

// Handle processes one event for one user. Callers must not run two events
// of the same user concurrently.
func (m *Machine) Handle(ctx context.Context, ev Event) Outcome {
	if ev.Kind == EventStart {
		return m.start(ctx, ev)
	}

	state := m.sessions.State(ev.UserID)
	if state.Authenticated() && m.sessions.IsExpired(ev.UserID, m.cfg.Timeout) {
		return m.autoLock(ctx, ev)
	}

	h, ok := m.table[state][ev.Kind]
	if !ok {
		slog.Warn("unhandled event", "user_id", ev.UserID, "state", state, "kind", ev.Kind)
		return Outcome{}
	}

	if state.Authenticated() {
		m.sessions.Touch(ev.UserID)
	}
	return h(ctx, ev)
}

// State returns the user's current state.
func (m *Machine) State(userID int64) domain.AuthState {
	return m.sessions.State(userID)
}

// transition moves the user to a new state. Leaving WaitingDelete drops the
// pending index and leaving WaitingFile drops the upload batch.
func (m *Machine) transition(userID int64, to domain.AuthState) {
	from := m.sessions.State(userID)
	if from == domain.StateWaitingDelete && to != domain.StateWaitingDelete {
		m.sessions.ClearPendingIndex(userID)
	}
	if from == domain.StateWaitingFile && to != domain.StateWaitingFile {
		m.sessions.ClearUploads(userID)
	}
	m.sessions.SetState(userID, to)

	if from != to {
		slog.Debug("auth transition", "user_id", userID, "from", from, "to", to)
	}
}

// record appends an activity entry. A failing log never fails the action.
func (m *Machine) record(ctx context.Context, userID int64, message string) {
	entry := domain.ActivityEntry{
		ActorID: userID,
		Message: message,
		At:      m.sessions.Now(),
	}
	if err := m.log.Append(ctx, entry); err != nil {
		slog.Error("failed to append activity entry", "error", err, "user_id", userID)
	}
}

func (m *Machine) start(_ context.Context, ev Event) Outcome {
	m.transition(ev.UserID, domain.StateWaitingPassword)
	return reply(TextEnterPassword)
}

func (m *Machine) autoLock(ctx context.Context, ev Event) Outcome {
	m.transition(ev.UserID, domain.StateWaitingPassword)
	m.record(ctx, ev.UserID, logAutoLock)
	return fail(domain.ErrSessionExpired, TextSessionEnded)
}

func (m *Machine) checkPassword(ctx context.Context, ev Event) Outcome {
	if !m.acceptsSecret(ev.Text) {
		m.record(ctx, ev.UserID, logLoginFailed)
		return fail(domain.ErrAuthFailure, TextInvalidPassword)
	}

	m.transition(ev.UserID, domain.StateActive)
	m.sessions.Touch(ev.UserID)
	m.record(ctx, ev.UserID, logLoginOK)
	return replyMenu(TextAccessGranted, MenuMain)
}

// acceptsSecret matches the primary password or the unlock code.
func (m *Machine) acceptsSecret(text string) bool {
	if text == "" {
		return false
	}
	if secretEqual(text, m.cfg.Password) {
		return true
	}
	return m.cfg.UnlockCode != "" && secretEqual(text, m.cfg.UnlockCode)
}

func secretEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (m *Machine) reprompt(_ context.Context, _ Event) Outcome {
	return reply(TextEnterPassword)
}

func (m *Machine) menuHint(_ context.Context, _ Event) Outcome {
	return replyMenu(TextUseMenu, MenuMain)
}

func (m *Machine) menu(ctx context.Context, ev Event) Outcome {
	h, ok := m.menuActions[ev.Action]
	if !ok {
		slog.Warn("unknown menu action", "user_id", ev.UserID, "action", ev.Action)
		return Outcome{}
	}
	return h(ctx, ev)
}
