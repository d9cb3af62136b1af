package telegram

import (
	"github.com/go-telegram/bot/models"
	"github.com/set-night/vaultbot/internal/auth"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text string, action auth.MenuAction) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: string(action),
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

func MainMenu() *models.InlineKeyboardMarkup {
	return InlineKeyboard(
		ButtonRow(InlineButton("1. База данных", auth.ActionDatabase)),
		ButtonRow(InlineButton("2. Настройки", auth.ActionSettings)),
		ButtonRow(InlineButton("3. Выход", auth.ActionLogout)),
	)
}

func DatabaseMenu() *models.InlineKeyboardMarkup {
	return InlineKeyboard(
		ButtonRow(InlineButton("Сохранить информацию", auth.ActionSave)),
		ButtonRow(InlineButton("Просмотреть информацию", auth.ActionView)),
	)
}

func SettingsMenu() *models.InlineKeyboardMarkup {
	return InlineKeyboard(
		ButtonRow(InlineButton("Сменить пароль", auth.ActionNoop)),
		ButtonRow(InlineButton("Аварийное отключение", auth.ActionLockdown)),
		ButtonRow(InlineButton("Просмотр логов", auth.ActionLogs)),
	)
}

// Keyboard maps a menu to its markup. MenuNone has no keyboard.
func Keyboard(m auth.Menu) *models.InlineKeyboardMarkup {
	switch m {
	case auth.MenuMain:
		return MainMenu()
	case auth.MenuDatabase:
		return DatabaseMenu()
	case auth.MenuSettings:
		return SettingsMenu()
	default:
		return nil
	}
}
