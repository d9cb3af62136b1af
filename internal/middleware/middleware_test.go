package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageFrom(userID int64) *models.Update {
	return &models.Update{
		ID: userID,
		Message: &models.Message{
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID},
			Text: "hi",
		},
	}
}

func TestSenderOf(t *testing.T) {
	s := SenderOf(messageFrom(7))
	assert.Equal(t, Sender{Kind: "message", UserID: 7, ChatID: 7}, s)

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{
		From: models.User{ID: 9},
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{Chat: models.Chat{ID: 90}},
		},
	}}
	assert.Equal(t, Sender{Kind: "callback_query", UserID: 9, ChatID: 90}, SenderOf(cb))

	assert.Equal(t, "unknown", SenderOf(&models.Update{}).Kind)
}

func TestRecover(t *testing.T) {
	var handled []int64
	h := Recover()(func(_ context.Context, _ *bot.Bot, u *models.Update) {
		if u.Message.Text == "boom" {
			panic("boom")
		}
		handled = append(handled, u.ID)
	})

	assert.NotPanics(t, func() { h(context.Background(), nil, textFrom(1, 1, "boom")) })
	h(context.Background(), nil, textFrom(1, 2, "ok"))
	assert.Equal(t, []int64{2}, handled, "the next update from the same user still runs")
}

func TestSerialize_StoresSender(t *testing.T) {
	d := NewDispatcher(4)
	var got Sender
	h := Serialize(d)(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		got, _ = GetSender(ctx)
	})
	h(context.Background(), nil, messageFrom(5))
	d.Wait()
	assert.Equal(t, int64(5), got.UserID)
}

func TestSerialize_SkipsAnonymous(t *testing.T) {
	d := NewDispatcher(4)
	called := false
	h := Serialize(d)(func(context.Context, *bot.Bot, *models.Update) {
		called = true
	})
	h(context.Background(), nil, &models.Update{})
	d.Wait()
	assert.False(t, called)
	assert.Equal(t, 0, d.Active())
}

func textFrom(userID int64, seq int64, text string) *models.Update {
	u := messageFrom(userID)
	u.ID = seq
	u.Message.Text = text
	return u
}

func TestSerialize_KeepsArrivalOrderPerUser(t *testing.T) {
	for round := 0; round < 50; round++ {
		d := NewDispatcher(8)

		var mu sync.Mutex
		var got []int64
		h := Serialize(d)(func(_ context.Context, _ *bot.Bot, u *models.Update) {
			// Early updates are slower, as a photo upload is slower than "готово".
			time.Sleep(time.Duration(5-u.ID%5) * 100 * time.Microsecond)
			mu.Lock()
			got = append(got, u.ID)
			mu.Unlock()
		})

		// The bot worker delivers updates one by one in arrival order.
		var want []int64
		for seq := int64(1); seq <= 5; seq++ {
			want = append(want, seq)
			h(context.Background(), nil, textFrom(7, seq, "x"))
		}
		d.Wait()

		require.Equal(t, want, got, "round %d", round)
		assert.Equal(t, 0, d.Active())
	}
}

func TestSerialize_OneAtATimePerUser(t *testing.T) {
	d := NewDispatcher(8)
	var active, maxActive int32
	h := Serialize(d)(func(context.Context, *bot.Bot, *models.Update) {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)
	})

	for i := 0; i < 10; i++ {
		h(context.Background(), nil, messageFrom(42))
	}
	d.Wait()

	require.Equal(t, int32(0), atomic.LoadInt32(&active))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestDispatcher_UsersAreIndependent(t *testing.T) {
	d := NewDispatcher(4)
	release := make(chan struct{})
	otherDone := make(chan struct{})

	d.Submit(1, func() { <-release })
	d.Submit(1, func() {})
	d.Submit(2, func() { close(otherDone) })

	select {
	case <-otherDone:
	case <-time.After(time.Second):
		t.Fatal("user 2 waited for user 1")
	}
	assert.Eventually(t, func() bool { return d.Active() == 1 }, time.Second, time.Millisecond,
		"user 2 queue drains while user 1 is still blocked")

	close(release)
	d.Wait()
	assert.Equal(t, 0, d.Active())
}

func TestDispatcher_PanicDoesNotStrandQueue(t *testing.T) {
	d := NewDispatcher(1)
	ran := false

	d.Submit(3, func() { panic("boom") })
	d.Submit(3, func() { ran = true })
	d.Wait()

	assert.True(t, ran)
	assert.Equal(t, 0, d.Active())
}

func TestDispatcher_LimitsConcurrency(t *testing.T) {
	d := NewDispatcher(2)
	var active, maxActive int32

	for id := int64(1); id <= 6; id++ {
		d.Submit(id, func() {
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		})
	}
	d.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&maxActive), int32(2))
}
