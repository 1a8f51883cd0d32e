package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avvvet/levelup-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

// publisher is satisfied by *nats.Conn.
type publisher interface {
	Publish(subj string, data []byte) error
}

// Broker publishes attendance notifications for the socket service to fan out.
type Broker struct {
	Conn    publisher
	Subject string
}

func NewBroker(conn publisher, subject string) *Broker {
	return &Broker{
		Conn:    conn,
		Subject: subject,
	}
}

// Notify wraps n in a WSMessage whose type is the notification type.
func (b *Broker) Notify(ctx context.Context, n comm.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &comm.WSMessage{
		Type: n.Type,
		Data: data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}

	return b.Publish(b.Subject, payload)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
