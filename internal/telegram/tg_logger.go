package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/set-night/vaultbot/internal/activitylog"
	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/domain"
)

// TelegramLogger mirrors activity entries into a chat, optionally into a
// forum topic.
type TelegramLogger struct {
	bot     *bot.Bot
	chatID  int64
	topicID int
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{
		bot:     b,
		chatID:  cfg.LogTelegramChatID,
		topicID: cfg.LogTelegramTopicID,
	}
}

func (l *TelegramLogger) Append(ctx context.Context, e domain.ActivityEntry) error {
	if l.chatID == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.TelegramLogTimeout)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.chatID,
		Text:            Truncate(activitylog.FormatEntry(e), config.MaxTelegramMessageLen),
		MessageThreadID: l.topicID,
	})
	if err != nil {
		return fmt.Errorf("send telegram log: %w", err)
	}
	return nil
}
