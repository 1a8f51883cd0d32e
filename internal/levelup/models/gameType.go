package models

type GameType struct {
	ID    int64  `json:"id"`    // Primary key
	Label string `json:"label"` // e.g. Board game, Card game
}
