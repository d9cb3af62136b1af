package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	// Always answer so the client stops the button spinner.
	defer func() {
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cq.ID,
		}); err != nil {
			slog.Warn("answer callback failed", "error", err, "user_id", cq.From.ID)
		}
	}()

	chatID := cq.From.ID
	messageID := 0
	if cq.Message.Message != nil {
		chatID = cq.Message.Message.Chat.ID
		messageID = cq.Message.Message.ID
	}

	ev := eventFromCallback(cq)
	out := h.machine.Handle(ctx, ev)
	h.deliver(ctx, b, ev, chatID, messageID, out)
}
