package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers the command and callback handlers on the bot instance.
// Everything else reaches HandleMessage through the default handler.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)

	// Every menu button shares one callback handler.
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.handleCallback)
}
