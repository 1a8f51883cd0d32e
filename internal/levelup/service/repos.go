package service

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
)

// Storage is injected into every service explicitly. The per-table repositories
// in store and memstore implement these.

type UserRepository interface {
	// CreateWithGamer inserts the user and its gamer profile atomically.
	CreateWithGamer(ctx context.Context, u models.User, passwordHash, bio string) (*models.Gamer, error)
	// GetCredentials returns the user and its password hash.
	GetCredentials(ctx context.Context, username string) (*models.User, string, error)
}

type GamerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Gamer, error)
}

type GameTypeRepository interface {
	List(ctx context.Context) ([]models.GameType, error)
	GetByID(ctx context.Context, id int64) (*models.GameType, error)
}

type GameRepository interface {
	List(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Create(ctx context.Context, g *models.Game) error
	Update(ctx context.Context, g *models.Game) error
	// Delete removes the game; its events and their attendance go with it.
	Delete(ctx context.Context, id int64) error
}

type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	// ListByGames returns the events of the given games without expanded relations.
	ListByGames(ctx context.Context, gameIDs []int64) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id int64) error
}

type AttendanceRepository interface {
	// Add is a no-op when the pair already exists.
	Add(ctx context.Context, eventID, gamerID int64) error
	// Remove is a no-op when the pair does not exist.
	Remove(ctx context.Context, eventID, gamerID int64) error
	ListByEvents(ctx context.Context, eventIDs []int64) ([]models.Attendance, error)
}
