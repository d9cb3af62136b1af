package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/set-night/vaultbot/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_Short(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
}

func TestSplitMessage_PrefersNewline(t *testing.T) {
	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 8)+"\n", parts[0])
	assert.Equal(t, strings.Repeat("b", 8), parts[1])
}

func TestSplitMessage_Cyrillic(t *testing.T) {
	text := strings.Repeat("я", 25)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.True(t, utf8.ValidString(p))
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 10)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessage_NewlineAfterMultibyte(t *testing.T) {
	// The newline sits at byte 12 but rune 6; splitting must count runes.
	text := strings.Repeat("я", 6) + "\n" + strings.Repeat("я", 6)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("я", 6)+"\n", parts[0])
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "абвгдеж...", Truncate("абвгдежзийклм", 10))
}

func TestKeyboards(t *testing.T) {
	tests := []struct {
		menu    auth.Menu
		actions []string
	}{
		{auth.MenuMain, []string{"db", "settings", "logout"}},
		{auth.MenuDatabase, []string{"save", "view"}},
		{auth.MenuSettings, []string{"nop", "lockdown", "logs"}},
	}
	for _, tt := range tests {
		kb := Keyboard(tt.menu)
		require.NotNil(t, kb)

		var got []string
		for _, row := range kb.InlineKeyboard {
			for _, btn := range row {
				assert.NotEmpty(t, btn.Text)
				got = append(got, btn.CallbackData)
			}
		}
		assert.Equal(t, tt.actions, got)
	}

	assert.Nil(t, Keyboard(auth.MenuNone))
}
