package notify

import (
	"context"
	"errors"
	"testing"

	"logistics/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramChannel_Announce(t *testing.T) {
	sender := &fakeSender{}
	channel := newTelegramChannel(sender, -100123, "https://app.example.com/")

	err := channel.Announce(context.Background(), ports.Notification{
		Title: "Order canceled", Body: "Client unreachable", Link: "/orders/7",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100123), msg.ChatID)
	assert.Equal(t, "Order canceled\nClient unreachable\nhttps://app.example.com/orders/7", msg.Text)
	assert.True(t, msg.DisableWebPagePreview)
}

func TestTelegramChannel_Announce_Failure(t *testing.T) {
	channel := newTelegramChannel(&fakeSender{err: errors.New("forbidden")}, 1, "")

	err := channel.Announce(context.Background(), ports.Notification{Title: "t", Body: "b"})

	assert.ErrorContains(t, err, "forbidden")
}
