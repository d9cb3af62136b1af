package repository

import (
	"testing"
	"time"

	"github.com/set-night/vaultbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderTail(t *testing.T) {
	t0 := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	newestFirst := []domain.ActivityEntry{
		{ActorID: 3, Message: "third", At: t0.Add(2 * time.Second)},
		{ActorID: 2, Message: "second", At: t0.Add(time.Second)},
		{ActorID: 1, Message: "first", At: t0},
	}

	all := renderTail(newestFirst, 0)
	assert.Equal(t,
		"2026-10-17 12:00:00,000 - [1] first\n"+
			"2026-10-17 12:00:01,000 - [2] second\n"+
			"2026-10-17 12:00:02,000 - [3] third\n",
		all)

	// Lines are 36 or 37 bytes; 80 fits the two newest only.
	two := renderTail(newestFirst, 80)
	assert.Equal(t,
		"2026-10-17 12:00:01,000 - [2] second\n"+
			"2026-10-17 12:00:02,000 - [3] third\n",
		two)

	assert.Empty(t, renderTail(newestFirst, 10))
	assert.Empty(t, renderTail(nil, 100))
}
