package models

type Event struct {
	ID          int64  `json:"id"`
	GameID      int64  `json:"-"` // FK to games(id)
	Description string `json:"description"`
	Date        string `json:"date"` // 2006-01-02
	Time        string `json:"time"` // 15:04:05
	OrganizerID int64  `json:"-"`    // FK to gamers(id)

	// expanded relations, filled on reads
	Game      *Game  `json:"game"`
	Organizer *Gamer `json:"organizer"`

	// attendance data, assembled by the event service
	Attendees      []Gamer `json:"attendees"`
	AttendeesCount *int    `json:"attendees_count"`
	Joined         *int    `json:"joined"`
}

// EventFilter narrows an event listing. Nil fields do not filter.
type EventFilter struct {
	GameID *int64
}
