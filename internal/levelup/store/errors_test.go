package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "Game", nil))

	err := translate(fmt.Errorf("scan: %w", pgx.ErrNoRows), "Game", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.EqualError(t, err, "Game matching query does not exist.")

	err = translate(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "events_game_id_fkey"},
		"Event", map[string]int64{"game": 42})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{`Invalid pk "42" - object does not exist.`}, verr.Fields["game"])

	err = translate(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "event_attendees_event_id_fkey"}, "Attendance", nil)
	assert.EqualError(t, err, "Event matching query does not exist.")

	err = translate(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_username_key"}, "User", nil)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")

	err = translate(&pgconn.PgError{Code: "22003", ColumnName: "number_of_players"}, "Game", nil)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Invalid value."}, verr.Fields["number_of_players"])

	err = translate(&pgconn.PgError{Code: "22021"}, "Event", nil)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "non_field_errors")

	err = translate(&pgconn.PgError{Code: "22008", ColumnName: "game_id"}, "Event", nil)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "game")

	boom := errors.New("connection reset")
	err = translate(boom, "Game", nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "game query failed")
}
