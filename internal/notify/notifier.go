// Package notify posts run reports to a Telegram chat.
package notify

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier sends reports to one chat. A nil *Notifier drops everything,
// which is what runs without Telegram settings get.
type Notifier struct {
	bot    sender
	chat   *tele.Chat
	logger *zap.Logger
}

func New(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	// offline: the pipeline only sends, it never polls for updates
	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return newNotifier(b, chatID, logger), nil
}

func newNotifier(bot sender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:    bot,
		chat:   &tele.Chat{ID: chatID},
		logger: logger,
	}
}

// Send delivers a MarkdownV2 message.
func (n *Notifier) Send(message string) error {
	if n == nil {
		return nil
	}

	if _, err := n.bot.Send(n.chat, message, tele.ModeMarkdownV2); err != nil {
		n.logger.Error("failed to send report",
			zap.Int64("chat_id", n.chat.ID),
			zap.Error(err),
		)
		return fmt.Errorf("send report: %w", err)
	}

	n.logger.Debug("report sent", zap.Int64("chat_id", n.chat.ID))

	return nil
}
