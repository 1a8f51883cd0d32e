package models

// UserEventRow is one row of the events_by_user view.
type UserEventRow struct {
	ID          int64
	Date        string
	Time        string
	Title       string
	OrganizerID int64
	FullName    string
}

// UserGameRow is one row of the games_by_user view.
type UserGameRow struct {
	ID              int64
	Title           string
	Maker           string
	NumberOfPlayers int
	SkillLevel      int
	GameTypeID      int64
	GamerID         int64
	FullName        string
}
