package handler

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/vaultbot/internal/auth"
	"github.com/set-night/vaultbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func msgFrom(userID int64) *models.Message {
	return &models.Message{
		From: &models.User{ID: userID},
		Chat: models.Chat{ID: userID},
	}
}

func TestEventFromMessage_Text(t *testing.T) {
	msg := msgFrom(1001)
	msg.Text = "secret123"

	ev := eventFromMessage(msg)
	assert.Equal(t, auth.Event{UserID: 1001, Kind: auth.EventText, Text: "secret123"}, ev)
}

func TestEventFromMessage_Start(t *testing.T) {
	for _, text := range []string{"/start", "/start deep", "/start@vault_bot", " /start "} {
		msg := msgFrom(5)
		msg.Text = text
		assert.Equal(t, auth.EventStart, eventFromMessage(msg).Kind, text)
	}

	msg := msgFrom(5)
	msg.Text = "/startle"
	assert.Equal(t, auth.EventText, eventFromMessage(msg).Kind)
}

func TestEventFromMessage_Attachments(t *testing.T) {
	tests := []struct {
		name string
		set  func(*models.Message)
		want domain.Attachment
	}{
		{
			name: "document",
			set: func(m *models.Message) {
				m.Document = &models.Document{FileID: "doc1", FileName: "report.pdf"}
			},
			want: domain.Attachment{Kind: domain.AttachmentDocument, FileID: "doc1", FileName: "report.pdf"},
		},
		{
			name: "photo picks largest size",
			set: func(m *models.Message) {
				m.Photo = []models.PhotoSize{{FileID: "small"}, {FileID: "medium"}, {FileID: "large"}}
				m.Caption = "ignored"
			},
			want: domain.Attachment{Kind: domain.AttachmentPhoto, FileID: "large"},
		},
		{
			name: "audio",
			set: func(m *models.Message) {
				m.Audio = &models.Audio{FileID: "aud1", FileName: "song.mp3"}
			},
			want: domain.Attachment{Kind: domain.AttachmentAudio, FileID: "aud1", FileName: "song.mp3"},
		},
		{
			name: "sticker is unsupported",
			set: func(m *models.Message) {
				m.Sticker = &models.Sticker{FileID: "st1"}
			},
			want: domain.Attachment{Kind: domain.AttachmentUnsupported},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := msgFrom(7)
			tt.set(msg)

			ev := eventFromMessage(msg)
			assert.Equal(t, auth.EventAttachment, ev.Kind)
			assert.Equal(t, int64(7), ev.UserID)
			assert.Equal(t, tt.want, ev.Attachment)
		})
	}
}

func TestEventFromMessage_NoSenderUsesChat(t *testing.T) {
	msg := &models.Message{Chat: models.Chat{ID: 77}, Text: "hi"}
	assert.Equal(t, int64(77), eventFromMessage(msg).UserID)
}

func TestEventFromCallback(t *testing.T) {
	cq := &models.CallbackQuery{From: models.User{ID: 3}, Data: "view"}
	assert.Equal(t, auth.Event{UserID: 3, Kind: auth.EventMenu, Action: auth.ActionView}, eventFromCallback(cq))
}
