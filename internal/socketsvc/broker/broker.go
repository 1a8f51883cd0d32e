package broker

import (
	"encoding/json"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn       *nats.Conn
	Recipients func(int64) []string
	Send       func(string, *comm.WSMessage) error
}

func NewBroker(conn *nats.Conn, fncRecipients func(int64) []string, fncSend func(string, *comm.WSMessage) error) *Broker {
	return &Broker{
		Conn:       conn,
		Recipients: fncRecipients,
		Send:       fncSend,
	}
}

// Subscribe consumes notifications from the levelup service. Every socket
// service instance subscribes without a queue group so each gets every message.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages receive message from levelup service
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.EventCreated, comm.EventUpdated, comm.EventDeleted,
		comm.GamerJoined, comm.GamerLeft, comm.GameDeleted:
		b.fanOut(message)
	default:
		log.Warnf("Unknown message %s", message.Type)
		return
	}
}

// fanOut sends the message once to every socket watching one of its events.
func (b *Broker) fanOut(m *comm.WSMessage) {
	var n comm.Notification
	if err := json.Unmarshal(m.Data, &n); err != nil {
		log.Errorf("Error decoding notification %s", err)
		return
	}

	for _, socketId := range b.recipients(n) {
		if err := b.Send(socketId, m); err != nil {
			log.Warnf("send %s to socket %s: %s", m.Type, socketId, err)
		}
	}
}

// recipients covers the single event of a notification, or every event
// removed with a deleted game.
func (b *Broker) recipients(n comm.Notification) []string {
	eventIDs := n.EventIDs
	if len(eventIDs) == 0 {
		eventIDs = []int64{n.EventID}
	}

	seen := make(map[string]bool)
	var sockets []string
	for _, eventID := range eventIDs {
		for _, socketId := range b.Recipients(eventID) {
			if !seen[socketId] {
				seen[socketId] = true
				sockets = append(sockets, socketId)
			}
		}
	}
	return sockets
}
