package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/avvvet/levelup-services/internal/levelup/models"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150,nonul"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=150,nonul"`
	LastName  string `json:"last_name" validate:"max=150,nonul"`
	Bio       string `json:"bio" validate:"max=50,nonul"`
}

type ActivityReader interface {
	Recent(ctx context.Context, gamerID int64, limit int64) ([]comm.Activity, error)
}

// GamerService struct represents the gamer service layer
type GamerService struct {
	users    UserRepository
	gamers   GamerRepository
	activity ActivityReader
	hashCost int
}

// NewGamerService creates a new GamerService instance. activity may be nil.
func NewGamerService(users UserRepository, gamers GamerRepository, activity ActivityReader) *GamerService {
	return &GamerService{
		users:    users,
		gamers:   gamers,
		activity: activity,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost, tests use bcrypt.MinCost.
func (s *GamerService) WithHashCost(cost int) *GamerService {
	s.hashCost = cost
	return s
}

// Register creates a user and its gamer profile.
func (s *GamerService) Register(ctx context.Context, in RegisterInput) (*models.Gamer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	return s.users.CreateWithGamer(ctx, user, string(hash), in.Bio)
}

// Login checks the credentials and returns the matching gamer.
func (s *GamerService) Login(ctx context.Context, username, password string) (*models.Gamer, error) {
	user, hash, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return s.gamers.GetByUserID(ctx, user.ID)
}

// ResolveUser maps an authenticated user id to its gamer profile.
func (s *GamerService) ResolveUser(ctx context.Context, userID int64) (*models.Gamer, error) {
	return s.gamers.GetByUserID(ctx, userID)
}

// Activity returns the gamer's most recent notifications, newest first.
func (s *GamerService) Activity(ctx context.Context, gamer *models.Gamer, limit int64) ([]comm.Activity, error) {
	if s.activity == nil {
		return []comm.Activity{}, nil
	}
	records, err := s.activity.Recent(ctx, gamer.ID, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []comm.Activity{}
	}
	return records, nil
}
