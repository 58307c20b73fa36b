package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

// TelegramChannel mirrors reminders to users who linked a Telegram
// chat. It is additive: push fan-out is always attempted regardless.
type TelegramChannel struct {
	api *tgbotapi.BotAPI
}

func NewTelegramChannel(token string) (*TelegramChannel, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: create telegram api: %w", err)
	}
	return &TelegramChannel{api: api}, nil
}

func (c *TelegramChannel) Deliver(chatID int64, r models.Reminder) error {
	text := "⏰ " + r.Title
	if r.Body != "" {
		text += "\n\n" + r.Body
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := c.api.Send(msg)
	return err
}
