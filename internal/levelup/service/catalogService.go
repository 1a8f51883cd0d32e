package service

import (
	"context"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/avvvet/levelup-services/internal/levelup/models"
)

type GameInput struct {
	Title           string `json:"title" validate:"required,max=55,nonul"`
	Maker           string `json:"maker" validate:"required,max=55,nonul"`
	NumberOfPlayers *int   `json:"number_of_players" validate:"required,min=1,max=2147483647"`
	SkillLevel      *int   `json:"skill_level" validate:"required,min=-2147483648,max=2147483647"`
	GameType        *int64 `json:"game_type" validate:"required,gt=0"`
}

// CatalogService manages games and game types.
type CatalogService struct {
	games     GameRepository
	gameTypes GameTypeRepository
	events    EventRepository
	notifier  Notifier
}

func NewCatalogService(games GameRepository, gameTypes GameTypeRepository,
	events EventRepository, notifier Notifier) *CatalogService {
	return &CatalogService{
		games:     games,
		gameTypes: gameTypes,
		events:    events,
		notifier:  notifier,
	}
}

// ListGames returns every game matching filter with its total event count and the
// number of those events organized by requester.
func (s *CatalogService) ListGames(ctx context.Context, requester *models.Gamer, filter models.GameFilter) ([]models.Game, error) {
	games, err := s.games.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return []models.Game{}, nil
	}

	ids := make([]int64, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	events, err := s.events.ListByGames(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := make(map[int64]int, len(games))
	mine := make(map[int64]int, len(games))
	for _, e := range events {
		total[e.GameID]++
		if e.OrganizerID == requester.ID {
			mine[e.GameID]++
		}
	}

	for i := range games {
		eventCount := total[games[i].ID]
		userEventCount := mine[games[i].ID]
		games[i].EventCount = &eventCount
		games[i].UserEventCount = &userEventCount
	}
	return games, nil
}

func (s *CatalogService) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	return s.games.GetByID(ctx, id)
}

// CreateGame stores a new game owned by requester.
func (s *CatalogService) CreateGame(ctx context.Context, requester *models.Gamer, in GameInput) (*models.Game, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	game := &models.Game{
		GameTypeID:      *in.GameType,
		Title:           in.Title,
		Maker:           in.Maker,
		OwnerID:         requester.ID,
		NumberOfPlayers: *in.NumberOfPlayers,
		SkillLevel:      *in.SkillLevel,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateGame replaces the editable fields. The owner never changes.
func (s *CatalogService) UpdateGame(ctx context.Context, id int64, in GameInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	game.GameTypeID = *in.GameType
	game.Title = in.Title
	game.Maker = in.Maker
	game.NumberOfPlayers = *in.NumberOfPlayers
	game.SkillLevel = *in.SkillLevel

	return s.games.Update(ctx, game)
}

// DeleteGame removes a game owned by requester, cascading to its events.
func (s *CatalogService) DeleteGame(ctx context.Context, requester *models.Gamer, id int64) error {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if game.OwnerID != requester.ID {
		return models.ErrPermissionDenied
	}
	// listed before the cascade removes them
	events, err := s.events.ListByGames(ctx, []int64{id})
	if err != nil {
		return err
	}
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}

	eventIDs := make([]int64, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}
	notify(ctx, s.notifier, comm.Notification{
		Type: comm.GameDeleted, GameID: id, EventIDs: eventIDs, GamerID: requester.ID,
	})
	return nil
}

func (s *CatalogService) ListGameTypes(ctx context.Context) ([]models.GameType, error) {
	return s.gameTypes.List(ctx)
}

func (s *CatalogService) GetGameType(ctx context.Context, id int64) (*models.GameType, error) {
	return s.gameTypes.GetByID(ctx, id)
}
