package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover logs a panicking update with its sender and stack and drops it.
// The user's session is left as the handler last wrote it, and the next
// update from the same user is processed normally.
func Recover() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					s := SenderOf(update)
					slog.Error("panic recovered in handler",
						"panic", r,
						"update_id", update.ID,
						"type", s.Kind,
						"user_id", s.UserID,
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, b, update)
		}
	}
}
