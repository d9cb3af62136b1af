package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/set-night/vaultbot/internal/auth"
)

// Machine is the authentication state machine driven by the handlers.
type Machine interface {
	Handle(ctx context.Context, ev auth.Event) auth.Outcome
}

// Handler turns Telegram updates into machine events and delivers the
// replies.
type Handler struct {
	bot     *bot.Bot
	machine Machine
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot     *bot.Bot
	Machine Machine
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:     deps.Bot,
		machine: deps.Machine,
	}
}
