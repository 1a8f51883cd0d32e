// Package reports reshapes the flat per-user report views into nested,
// per-organizer structures and renders them as HTML.
package reports

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
)

// Source reads the denormalized report views.
type Source interface {
	EventsByUser(ctx context.Context) ([]models.UserEventRow, error)
	GamesByUser(ctx context.Context) ([]models.UserGameRow, error)
}

type EventSummary struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	GameName string `json:"game_name"`
}

type UserEvents struct {
	GamerID  int64          `json:"gamer_id"`
	FullName string         `json:"full_name"`
	Events   []EventSummary `json:"events"`
}

type GameSummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Maker           string `json:"maker"`
	NumberOfPlayers int    `json:"number_of_players"`
	SkillLevel      int    `json:"skill_level"`
	GameTypeID      int64  `json:"game_type_id"`
}

type UserGames struct {
	GamerID  int64         `json:"gamer_id"`
	FullName string        `json:"full_name"`
	Games    []GameSummary `json:"games"`
}

// GroupEventsByUser buckets rows by organizer. Buckets keep the order in which
// each organizer first appears and events keep row order. Report sizes are small,
// so the bucket is found by linear scan.
func GroupEventsByUser(rows []models.UserEventRow) []UserEvents {
	out := []UserEvents{}

	for _, row := range rows {
		event := EventSummary{
			ID:       row.ID,
			Date:     row.Date,
			Time:     row.Time,
			GameName: row.Title,
		}

		var bucket *UserEvents
		for i := range out {
			if out[i].GamerID == row.OrganizerID {
				bucket = &out[i]
				break
			}
		}

		if bucket != nil {
			bucket.Events = append(bucket.Events, event)
		} else {
			out = append(out, UserEvents{
				GamerID:  row.OrganizerID,
				FullName: row.FullName,
				Events:   []EventSummary{event},
			})
		}
	}
	return out
}

// GroupGamesByUser does the same for games, keyed by owner.
func GroupGamesByUser(rows []models.UserGameRow) []UserGames {
	out := []UserGames{}

	for _, row := range rows {
		game := GameSummary{
			ID:              row.ID,
			Title:           row.Title,
			Maker:           row.Maker,
			NumberOfPlayers: row.NumberOfPlayers,
			SkillLevel:      row.SkillLevel,
			GameTypeID:      row.GameTypeID,
		}

		var bucket *UserGames
		for i := range out {
			if out[i].GamerID == row.GamerID {
				bucket = &out[i]
				break
			}
		}

		if bucket != nil {
			bucket.Games = append(bucket.Games, game)
		} else {
			out = append(out, UserGames{
				GamerID:  row.GamerID,
				FullName: row.FullName,
				Games:    []GameSummary{game},
			})
		}
	}
	return out
}

// Generator reads the views and groups them.
type Generator struct {
	source Source
}

func NewGenerator(source Source) *Generator {
	return &Generator{source: source}
}

func (g *Generator) UserEvents(ctx context.Context) ([]UserEvents, error) {
	rows, err := g.source.EventsByUser(ctx)
	if err != nil {
		return nil, err
	}
	return GroupEventsByUser(rows), nil
}

func (g *Generator) UserGames(ctx context.Context) ([]UserGames, error) {
	rows, err := g.source.GamesByUser(ctx)
	if err != nil {
		return nil, err
	}
	return GroupGamesByUser(rows), nil
}
