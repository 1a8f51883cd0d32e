package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportStore reads the denormalized report views.
type ReportStore struct {
	db *pgxpool.Pool
}

func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) EventsByUser(ctx context.Context) ([]models.UserEventRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, date, time, title, organizer_id, full_name
		FROM events_by_user
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err, "Report", nil)
	}
	defer rows.Close()

	out := []models.UserEventRow{}
	for rows.Next() {
		var r models.UserEventRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Time, &r.Title, &r.OrganizerID, &r.FullName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ReportStore) GamesByUser(ctx context.Context) ([]models.UserGameRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, maker, number_of_players, skill_level, game_type_id, gamer_id, full_name
		FROM games_by_user
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err, "Report", nil)
	}
	defer rows.Close()

	out := []models.UserGameRow{}
	for rows.Next() {
		var r models.UserGameRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Maker, &r.NumberOfPlayers, &r.SkillLevel,
			&r.GameTypeID, &r.GamerID, &r.FullName); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
