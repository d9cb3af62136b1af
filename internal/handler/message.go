package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleMessage feeds a chat message to the machine. It is also the bot's
// default handler, so updates without a message are ignored here.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message

	ev := eventFromMessage(msg)
	out := h.machine.Handle(ctx, ev)
	h.deliver(ctx, b, ev, msg.Chat.ID, 0, out)
}
