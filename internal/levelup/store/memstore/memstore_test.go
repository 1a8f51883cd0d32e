package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGamer(t *testing.T, s *Store, username, first, last string) *models.Gamer {
	t.Helper()
	g, err := s.Users.CreateWithGamer(context.Background(),
		models.User{Username: username, FirstName: first, LastName: last}, "hash", "")
	require.NoError(t, err)
	return g
}

func TestSeededGameTypes(t *testing.T) {
	s := New()
	types, err := s.GameTypes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, "Board game", types[0].Label)
}

func TestUniqueUsername(t *testing.T) {
	s := New()
	seedGamer(t, s, "alice", "Alice", "Smith")

	_, err := s.Users.CreateWithGamer(context.Background(), models.User{Username: "alice"}, "hash", "")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := New()
	alice := seedGamer(t, s, "alice", "Alice", "Smith")

	err := s.Games.Create(ctx, &models.Game{GameTypeID: 404, OwnerID: alice.ID, Title: "x"})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "game_type")

	err = s.Events.Create(ctx, &models.Event{GameID: 404, OrganizerID: alice.ID})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "game")

	assert.ErrorIs(t, s.Attendance.Add(ctx, 404, alice.ID), models.ErrNotFound)
}

func TestAttendanceOrderAndCascade(t *testing.T) {
	ctx := context.Background()
	s := New()
	alice := seedGamer(t, s, "alice", "Alice", "Smith")
	bob := seedGamer(t, s, "bob", "Bob", "Jones")

	game := &models.Game{GameTypeID: 1, OwnerID: alice.ID, Title: "Catan", Maker: "Kosmos", NumberOfPlayers: 4}
	require.NoError(t, s.Games.Create(ctx, game))
	event := &models.Event{GameID: game.ID, OrganizerID: alice.ID, Date: "2024-05-01", Time: "19:00:00"}
	require.NoError(t, s.Events.Create(ctx, event))

	require.NoError(t, s.Attendance.Add(ctx, event.ID, bob.ID))
	require.NoError(t, s.Attendance.Add(ctx, event.ID, alice.ID))
	require.NoError(t, s.Attendance.Add(ctx, event.ID, bob.ID))

	rows, err := s.Attendance.ListByEvents(ctx, []int64{event.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bob.ID, rows[0].Gamer.ID)
	assert.Equal(t, alice.ID, rows[1].Gamer.ID)
	assert.Equal(t, "Bob", rows[0].Gamer.User.FirstName)

	require.NoError(t, s.Games.Delete(ctx, game.ID))

	_, err = s.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	rows, err = s.Attendance.ListByEvents(ctx, []int64{event.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReportRows(t *testing.T) {
	ctx := context.Background()
	s := New()
	alice := seedGamer(t, s, "alice", "Alice", "Smith")

	game := &models.Game{GameTypeID: 2, OwnerID: alice.ID, Title: "Uno", Maker: "Mattel", NumberOfPlayers: 6, SkillLevel: 1}
	require.NoError(t, s.Games.Create(ctx, game))
	require.NoError(t, s.Events.Create(ctx, &models.Event{GameID: game.ID, OrganizerID: alice.ID, Date: "2024-05-01", Time: "19:00:00"}))

	events, err := s.Reports.EventsByUser(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Uno", events[0].Title)
	assert.Equal(t, "Alice Smith", events[0].FullName)
	assert.Equal(t, alice.ID, events[0].OrganizerID)

	games, err := s.Reports.GamesByUser(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(2), games[0].GameTypeID)
	assert.Equal(t, "Alice Smith", games[0].FullName)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Games.List(ctx, models.GameFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}
