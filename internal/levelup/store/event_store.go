package store

import (
	"context"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

// events expanded two levels: game -> type/owner, organizer -> user
var selectEvents = `
	SELECT e.id, e.game_id, e.description, e.date::text, e.time::text, e.organizer_id,
	       ` + gameColumns + `, ` + gamerCols("ow", "owu") + `,
	       ` + gamerCols("og", "ogu") + `
	FROM events e
	JOIN games g ON g.id = e.game_id
	JOIN game_types gt ON gt.id = g.game_type_id
	JOIN gamers ow ON ow.id = g.gamer_id
	JOIN users owu ON owu.id = ow.user_id
	JOIN gamers og ON og.id = e.organizer_id
	JOIN users ogu ON ogu.id = og.user_id
`

func scanEvent(row scanner) (*models.Event, error) {
	e := &models.Event{Game: &models.Game{}, Organizer: &models.Gamer{}}
	dest := []any{&e.ID, &e.GameID, &e.Description, &e.Date, &e.Time, &e.OrganizerID}
	dest = append(dest, gameDest(e.Game)...)
	dest = append(dest, gamerDest(e.Organizer)...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query := selectEvents + `
	WHERE ($1::bigint IS NULL OR e.game_id = $1)
	ORDER BY e.id
	`

	rows, err := s.db.Query(ctx, query, filter.GameID)
	if err != nil {
		return nil, translate(err, "Event", nil)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) ListByGames(ctx context.Context, gameIDs []int64) ([]models.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, description, date::text, time::text, organizer_id
		FROM events
		WHERE game_id = ANY($1)
		ORDER BY id
	`, gameIDs)
	if err != nil {
		return nil, translate(err, "Event", nil)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.GameID, &e.Description, &e.Date, &e.Time, &e.OrganizerID); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *EventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e, err := scanEvent(s.db.QueryRow(ctx, selectEvents+` WHERE e.id = $1`, id))
	if err != nil {
		return nil, translate(err, "Event", nil)
	}
	return e, nil
}

func (s *EventStore) Create(ctx context.Context, e *models.Event) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO events (game_id, description, date, time, organizer_id)
		VALUES ($1, $2, $3::text::date, $4::text::time, $5)
		RETURNING id
	`, e.GameID, e.Description, e.Date, e.Time, e.OrganizerID).Scan(&e.ID)

	return translate(err, "Event", map[string]int64{"game": e.GameID, "organizer": e.OrganizerID})
}

// Update never touches organizer_id.
func (s *EventStore) Update(ctx context.Context, e *models.Event) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE events
		SET game_id = $2, description = $3, date = $4::text::date, time = $5::text::time
		WHERE id = $1
	`, e.ID, e.GameID, e.Description, e.Date, e.Time)
	if err != nil {
		return translate(err, "Event", map[string]int64{"game": e.GameID})
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("Event")
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Event", nil)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("Event")
	}
	return nil
}
