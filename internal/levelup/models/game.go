package models

type Game struct {
	ID              int64  `json:"id"`
	GameTypeID      int64  `json:"-"` // FK to game_types(id)
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	OwnerID         int64  `json:"-"` // FK to gamers(id), creator of the game
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`

	// expanded relations, filled on reads
	GameType *GameType `json:"game_type"`
	Owner    *Gamer    `json:"gamer"`

	// derived counts, only computed by list
	EventCount     *int `json:"event_count"`
	UserEventCount *int `json:"user_event_count"`
}

// GameFilter narrows a game listing. Nil fields do not filter.
type GameFilter struct {
	GameTypeID *int64
}
