package middleware

import "github.com/go-telegram/bot/models"

// Sender identifies who sent an update and where replies go.
type Sender struct {
	Kind   string
	UserID int64
	ChatID int64
}

// SenderOf extracts the sender of a message or callback query.
func SenderOf(update *models.Update) Sender {
	s := Sender{Kind: "unknown"}

	if update.Message != nil {
		s.Kind = "message"
		s.ChatID = update.Message.Chat.ID
		if update.Message.From != nil {
			s.UserID = update.Message.From.ID
		}
	} else if update.CallbackQuery != nil {
		s.Kind = "callback_query"
		if update.CallbackQuery.Message.Message != nil {
			s.ChatID = update.CallbackQuery.Message.Message.Chat.ID
		}
		s.UserID = update.CallbackQuery.From.ID
	}

	return s
}
