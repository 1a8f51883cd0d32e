package store

import (
	"context"
	"fmt"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// CreateWithGamer inserts the user and its gamer profile in one transaction.
func (r *UserStore) CreateWithGamer(ctx context.Context, u models.User, passwordHash, bio string) (*models.Gamer, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO users (username, password_hash, first_name, last_name)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, u.Username, passwordHash, u.FirstName, u.LastName).Scan(&u.ID)
	if err != nil {
		return nil, translate(err, "User", nil)
	}

	gamer := &models.Gamer{UserID: u.ID, Bio: bio, User: u}
	err = tx.QueryRow(ctx, `
        INSERT INTO gamers (user_id, bio)
        VALUES ($1, $2)
        RETURNING id
    `, u.ID, bio).Scan(&gamer.ID)
	if err != nil {
		return nil, translate(err, "Gamer", nil)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return gamer, nil
}

func (r *UserStore) GetCredentials(ctx context.Context, username string) (*models.User, string, error) {
	u := &models.User{}
	var hash string
	err := r.db.QueryRow(ctx, `
        SELECT id, username, first_name, last_name, password_hash
        FROM users
        WHERE username = $1
    `, username).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &hash)
	if err != nil {
		return nil, "", translate(err, "User", nil)
	}
	return u, hash, nil
}
