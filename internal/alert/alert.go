// Package alert delivers run notifications. Unattended runs use it to flag
// transactions that still need a human decision.
package alert

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"card-ingest/internal/logging"
)

// Notifier sends a one-line notification.
type Notifier interface {
	Notify(text string) error
}

// Noop discards notifications. Used when no channel is configured.
type Noop struct{}

func (Noop) Notify(string) error { return nil }

// Telegram sends notifications to a fixed chat via a bot.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logging.Logger
}

// NewTelegram connects the bot. Token validation happens here, so a bad
// token fails at startup rather than at first notification.
func NewTelegram(token string, chatID int64, logger logging.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting telegram bot: %w", err)
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

func (t *Telegram) Notify(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.WithError(err).Error("Failed to send telegram notification")
		return err
	}
	return nil
}

// Memory records notifications for tests.
type Memory struct {
	Messages []string
}

func (m *Memory) Notify(text string) error {
	m.Messages = append(m.Messages, text)
	return nil
}
