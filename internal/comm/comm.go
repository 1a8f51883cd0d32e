package comm

import (
	"encoding/json"
	"time"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "gamer-joined"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

// notification types published after a successful mutation
const (
	EventCreated = "event-created"
	EventUpdated = "event-updated"
	EventDeleted = "event-deleted"
	GamerJoined  = "gamer-joined"
	GamerLeft    = "gamer-left"
	GameDeleted  = "game-deleted"
)

type Notification struct {
	Type     string    `json:"type"`
	EventID  int64     `json:"event_id,omitempty"`
	GameID   int64     `json:"game_id,omitempty"`
	EventIDs []int64   `json:"event_ids,omitempty"` // events removed with a deleted game
	GamerID  int64     `json:"gamer_id"`            // who caused it
	At       time.Time `json:"at"`
}

// WatchRequest is sent by a socket client to receive only one event's notifications.
// EventID 0 means every event.
type WatchRequest struct {
	EventID int64 `json:"event_id"`
}

// Activity is a stored notification, as returned by the activity log.
type Activity struct {
	ID       string    `json:"id" bson:"_id"`
	Type     string    `json:"type" bson:"type"`
	EventID  int64     `json:"event_id,omitempty" bson:"event_id,omitempty"`
	GameID   int64     `json:"game_id,omitempty" bson:"game_id,omitempty"`
	EventIDs []int64   `json:"event_ids,omitempty" bson:"event_ids,omitempty"`
	GamerID  int64     `json:"gamer_id" bson:"gamer_id"`
	At       time.Time `json:"at" bson:"at"`
}
