package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

var ErrUnknownSocket = errors.New("unknown socket")

// client serializes writes to one connection. gorilla allows a single concurrent writer.
type client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	eventID atomic.Int64 // 0 watches every event
}

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch":
		s.handleWatch(socketId, message)
	case "ping":
		s.reply(socketId, &comm.WSMessage{Type: "pong"})
	default:
		log.Warnf("unknown event received: %s", message.Type)
		s.SendError(socketId, "unknown message type "+message.Type)
	}
}

// handleWatch narrows the socket to one event's notifications, or widens it again with event_id 0.
func (s *Ws) handleWatch(socketId string, msg *comm.WSMessage) {
	var req comm.WatchRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.EventID < 0 {
		log.Errorf("Error: invalid_watch_data Malformed watch payload from %s", socketId)
		s.SendError(socketId, "invalid watch payload")
		return
	}

	c, ok := s.client(socketId)
	if !ok {
		return
	}
	c.eventID.Store(req.EventID)

	data, err := json.Marshal(req)
	if err != nil {
		log.Errorf("Failed to marshal watch response: %v", err)
		return
	}
	s.reply(socketId, &comm.WSMessage{Type: "watch-response", Data: data})

	log.Debugf("socket %s watching event %d", socketId, req.EventID)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, &client{conn: conn})
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

func (s *Ws) client(socketId string) (*client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*client), true
}

// Send writes m to one socket.
func (s *Ws) Send(socketId string, m *comm.WSMessage) error {
	c, ok := s.client(socketId)
	if !ok {
		return ErrUnknownSocket
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(m)
}

// SendError sends an error message back to the WebSocket client
func (s *Ws) SendError(socketId string, errorMsg string) {
	data, err := json.Marshal(map[string]string{"error": errorMsg})
	if err != nil {
		return
	}
	s.reply(socketId, &comm.WSMessage{Type: "error", Data: data})
}

func (s *Ws) reply(socketId string, m *comm.WSMessage) {
	if err := s.Send(socketId, m); err != nil {
		log.Errorf("Failed to send %s to socket %s: %v", m.Type, socketId, err)
	}
}

// Recipients lists the sockets that should receive a notification about eventID.
func (s *Ws) Recipients(eventID int64) []string {
	var sockets []string

	s.connMap.Range(func(key, value interface{}) bool {
		watched := value.(*client).eventID.Load()
		if watched == 0 || watched == eventID {
			sockets = append(sockets, key.(string))
		}
		return true // continue iterating
	})

	return sockets
}
