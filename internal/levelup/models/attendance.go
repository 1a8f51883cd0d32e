package models

// Attendance is one row of the event <-> gamer join, with the gamer expanded.
type Attendance struct {
	EventID int64 `json:"event_id"`
	Gamer   Gamer `json:"gamer"`
}
