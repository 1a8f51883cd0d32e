package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

var selectGames = `
	SELECT ` + gameColumns + `, ` + gamerCols("ow", "owu") + `
	FROM games g
	JOIN game_types gt ON gt.id = g.game_type_id
	JOIN gamers ow ON ow.id = g.gamer_id
	JOIN users owu ON owu.id = ow.user_id
`

// List returns games ordered by id, filtered by game type when set.
func (s *GameStore) List(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	query := selectGames + `
	WHERE ($1::bigint IS NULL OR g.game_type_id = $1)
	ORDER BY g.id
	`

	rows, err := s.db.Query(ctx, query, filter.GameTypeID)
	if err != nil {
		return nil, translate(err, "Game", nil)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(gameDest(&g)...); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *GameStore) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	game := &models.Game{}
	if err := s.db.QueryRow(ctx, selectGames+` WHERE g.id = $1`, id).Scan(gameDest(game)...); err != nil {
		return nil, translate(err, "Game", nil)
	}
	return game, nil
}

func (s *GameStore) Create(ctx context.Context, g *models.Game) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO games (game_type_id, title, maker, gamer_id, number_of_players, skill_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, g.GameTypeID, g.Title, g.Maker, g.OwnerID, g.NumberOfPlayers, g.SkillLevel).Scan(&g.ID)

	return translate(err, "Game", map[string]int64{"game_type": g.GameTypeID, "gamer": g.OwnerID})
}

// Update never touches gamer_id.
func (s *GameStore) Update(ctx context.Context, g *models.Game) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE games
		SET game_type_id = $2, title = $3, maker = $4, number_of_players = $5, skill_level = $6
		WHERE id = $1
	`, g.ID, g.GameTypeID, g.Title, g.Maker, g.NumberOfPlayers, g.SkillLevel)
	if err != nil {
		return translate(err, "Game", map[string]int64{"game_type": g.GameTypeID})
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("Game")
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for events and attendance.
func (s *GameStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Game", nil)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("Game")
	}
	return nil
}
