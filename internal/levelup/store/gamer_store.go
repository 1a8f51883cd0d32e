package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GamerStore struct {
	db *pgxpool.Pool
}

func NewGamerStore(db *pgxpool.Pool) *GamerStore {
	return &GamerStore{db: db}
}

func (r *GamerStore) GetByUserID(ctx context.Context, userID int64) (*models.Gamer, error) {
	query := `
		SELECT ` + gamerCols("gr", "u") + `
		FROM gamers gr
		JOIN users u ON u.id = gr.user_id
		WHERE gr.user_id = $1
	`

	g := &models.Gamer{}
	if err := r.db.QueryRow(ctx, query, userID).Scan(gamerDest(g)...); err != nil {
		return nil, translate(err, "Gamer", nil)
	}
	return g, nil
}
