package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceStore struct {
	db *pgxpool.Pool
}

func NewAttendanceStore(db *pgxpool.Pool) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// Add relies on the unique_event_gamer constraint, so concurrent joins of the
// same pair leave exactly one row.
func (s *AttendanceStore) Add(ctx context.Context, eventID, gamerID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO event_attendees (event_id, gamer_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_event_gamer DO NOTHING
	`, eventID, gamerID)
	return translate(err, "Attendance", nil)
}

func (s *AttendanceStore) Remove(ctx context.Context, eventID, gamerID int64) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM event_attendees
		WHERE event_id = $1 AND gamer_id = $2
	`, eventID, gamerID)
	return translate(err, "Attendance", nil)
}

// ListByEvents reads the join for all given events in one query, in insertion order.
func (s *AttendanceStore) ListByEvents(ctx context.Context, eventIDs []int64) ([]models.Attendance, error) {
	query := `
		SELECT a.event_id, ` + gamerCols("gr", "u") + `
		FROM event_attendees a
		JOIN gamers gr ON gr.id = a.gamer_id
		JOIN users u ON u.id = gr.user_id
		WHERE a.event_id = ANY($1)
		ORDER BY a.id
	`

	rows, err := s.db.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, translate(err, "Attendance", nil)
	}
	defer rows.Close()

	out := []models.Attendance{}
	for rows.Next() {
		var a models.Attendance
		dest := append([]any{&a.EventID}, gamerDest(&a.Gamer)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
