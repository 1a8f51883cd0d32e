// Package telegram posts attendance notifications to a set of admin chats.
package telegram

import (
	"context"
	"fmt"

	"github.com/avvvet/levelup-services/internal/comm"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// sender is satisfied by *tgbotapi.BotAPI.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends a message to all configured chat IDs
type Notifier struct {
	bot     sender
	chatIDs []int64
}

func New(botToken string, chatIDs []int64) (*Notifier, error) {
	if len(chatIDs) == 0 {
		return nil, fmt.Errorf("no telegram chat ids configured")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Notifier{
		bot:     bot,
		chatIDs: chatIDs,
	}, nil
}

// Notify returns once the sends are scheduled. Delivery failures are only logged
// so a slow Telegram API never holds up a request.
func (tn *Notifier) Notify(_ context.Context, n comm.Notification) error {
	text := Format(n)

	for _, chatID := range tn.chatIDs {
		go func(cid int64) {
			if _, err := tn.bot.Send(tgbotapi.NewMessage(cid, text)); err != nil {
				log.Errorf("Failed to send telegram message to chat %d: %v", cid, err)
			}
		}(chatID)
	}
	return nil
}

// Format renders n as a single line for the admin chat.
func Format(n comm.Notification) string {
	switch n.Type {
	case comm.EventCreated:
		return fmt.Sprintf("gamer %d scheduled event %d (game %d)", n.GamerID, n.EventID, n.GameID)
	case comm.EventUpdated:
		return fmt.Sprintf("gamer %d updated event %d", n.GamerID, n.EventID)
	case comm.EventDeleted:
		return fmt.Sprintf("gamer %d deleted event %d", n.GamerID, n.EventID)
	case comm.GamerJoined:
		return fmt.Sprintf("gamer %d joined event %d", n.GamerID, n.EventID)
	case comm.GamerLeft:
		return fmt.Sprintf("gamer %d left event %d", n.GamerID, n.EventID)
	case comm.GameDeleted:
		return fmt.Sprintf("gamer %d deleted game %d and its events", n.GamerID, n.GameID)
	}
	return fmt.Sprintf("%s by gamer %d", n.Type, n.GamerID)
}
