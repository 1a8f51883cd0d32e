package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameTypeStore struct {
	db *pgxpool.Pool
}

func NewGameTypeStore(db *pgxpool.Pool) *GameTypeStore {
	return &GameTypeStore{db: db}
}

func (s *GameTypeStore) List(ctx context.Context) ([]models.GameType, error) {
	rows, err := s.db.Query(ctx, `SELECT id, label FROM game_types ORDER BY id`)
	if err != nil {
		return nil, translate(err, "GameType", nil)
	}
	defer rows.Close()

	types := []models.GameType{}
	for rows.Next() {
		var gt models.GameType
		if err := rows.Scan(&gt.ID, &gt.Label); err != nil {
			return nil, err
		}
		types = append(types, gt)
	}
	return types, rows.Err()
}

func (s *GameTypeStore) GetByID(ctx context.Context, id int64) (*models.GameType, error) {
	gt := &models.GameType{}
	err := s.db.QueryRow(ctx, `SELECT id, label FROM game_types WHERE id = $1`, id).Scan(&gt.ID, &gt.Label)
	if err != nil {
		return nil, translate(err, "GameType", nil)
	}
	return gt, nil
}
