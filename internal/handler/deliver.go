package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/set-night/vaultbot/internal/auth"
	"github.com/set-night/vaultbot/internal/telegram"
)

// deliver sends the outcome's replies. Edit replies replace messageID when
// the update came from a button; otherwise they are sent as new messages.
func (h *Handler) deliver(ctx context.Context, b *bot.Bot, ev auth.Event, chatID int64, messageID int, out auth.Outcome) {
	if out.Err != nil {
		slog.Warn("event failed",
			"user_id", ev.UserID,
			"kind", ev.Kind,
			"action", ev.Action,
			"error", out.Err,
		)
	}

	for _, r := range out.Replies {
		markup := telegram.Keyboard(r.Menu)

		if r.Edit && messageID != 0 {
			err := telegram.EditMessage(ctx, b, chatID, messageID, r.Text, markup)
			if err == nil {
				continue
			}
			slog.Warn("edit failed, sending new message", "error", err, "user_id", ev.UserID)
		}

		if err := telegram.SendLongMessage(ctx, b, chatID, r.Text, markup); err != nil {
			slog.Error("failed to send reply", "error", err, "user_id", ev.UserID)
			return
		}
	}
}
