package notify

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramChannel mirrors admin notifications into an operators' chat.
type TelegramChannel struct {
	api     telegramSender
	chatID  int64
	baseURL string
}

func NewTelegramChannel(cfg TelegramConfig, baseURL string) (*TelegramChannel, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return newTelegramChannel(api, cfg.ChatID, baseURL), nil
}

func newTelegramChannel(api telegramSender, chatID int64, baseURL string) *TelegramChannel {
	return &TelegramChannel{api: api, chatID: chatID, baseURL: strings.TrimRight(baseURL, "/")}
}

// Announce posts n to the configured chat.
func (t *TelegramChannel) Announce(_ context.Context, n ports.Notification) error {
	text := n.Title + "\n" + n.Body
	if n.Link != "" {
		text += "\n" + t.baseURL + n.Link
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
