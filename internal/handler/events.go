package handler

import (
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/vaultbot/internal/auth"
	"github.com/set-night/vaultbot/internal/domain"
)

// eventFromMessage converts a chat message. Text wins over attachments;
// a message with neither becomes an unsupported attachment.
func eventFromMessage(msg *models.Message) auth.Event {
	ev := auth.Event{UserID: msg.Chat.ID}
	if msg.From != nil {
		ev.UserID = msg.From.ID
	}

	if msg.Text != "" {
		if isStartCommand(msg.Text) {
			ev.Kind = auth.EventStart
			return ev
		}
		ev.Kind = auth.EventText
		ev.Text = msg.Text
		return ev
	}

	ev.Kind = auth.EventAttachment
	ev.Attachment = attachmentOf(msg)
	return ev
}

func attachmentOf(msg *models.Message) domain.Attachment {
	switch {
	case msg.Document != nil:
		return domain.Attachment{
			Kind:     domain.AttachmentDocument,
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
		}
	case len(msg.Photo) > 0:
		// Sizes are ordered smallest first.
		largest := msg.Photo[len(msg.Photo)-1]
		return domain.Attachment{
			Kind:   domain.AttachmentPhoto,
			FileID: largest.FileID,
		}
	case msg.Audio != nil:
		return domain.Attachment{
			Kind:     domain.AttachmentAudio,
			FileID:   msg.Audio.FileID,
			FileName: msg.Audio.FileName,
		}
	default:
		return domain.Attachment{Kind: domain.AttachmentUnsupported}
	}
}

func eventFromCallback(cq *models.CallbackQuery) auth.Event {
	return auth.Event{
		UserID: cq.From.ID,
		Kind:   auth.EventMenu,
		Action: auth.MenuAction(cq.Data),
	}
}

// isStartCommand matches "/start", "/start payload" and "/start@botname".
func isStartCommand(text string) bool {
	cmd, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/start"
}
