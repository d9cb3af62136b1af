package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type ctxKey string

const SenderKey ctxKey = "sender"

// GetSender returns the sender stored by Serialize.
func GetSender(ctx context.Context) (Sender, bool) {
	s, ok := ctx.Value(SenderKey).(Sender)
	return s, ok
}

// Serialize hands every update to the dispatcher queue of its sender, so
// one user's updates run in the order the middleware saw them while
// different users proceed in parallel. It must be the outermost middleware
// and the bot must call handlers synchronously from a single worker,
// otherwise arrival order is already lost before it gets here. Updates
// without a sender are dropped.
func Serialize(d *Dispatcher) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			s := SenderOf(update)
			if s.UserID == 0 {
				slog.Debug("update without sender skipped", "update_id", update.ID, "type", s.Kind)
				return
			}

			ctx = context.WithValue(ctx, SenderKey, s)
			d.Submit(s.UserID, func() {
				next(ctx, b, update)
			})
		}
	}
}
