package service

import (
	"errors"
	"testing"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGamesFilterByType(t *testing.T) {
	f := newFixture(t)
	alice := f.gamer(t, "alice")
	catan := f.game(t, alice, "Catan", 1)
	uno := f.game(t, alice, "Uno", 2)
	root := f.game(t, alice, "Root", 1)

	all, err := f.catalog.ListGames(f.ctx, alice, models.GameFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	board, err := f.catalog.ListGames(f.ctx, alice, models.GameFilter{GameTypeID: ptr(int64(1))})
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, catan.ID, board[0].ID)
	assert.Equal(t, root.ID, board[1].ID)
	for _, g := range board {
		assert.Equal(t, int64(1), g.GameType.ID)
	}

	cards, err := f.catalog.ListGames(f.ctx, alice, models.GameFilter{GameTypeID: ptr(int64(2))})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, uno.ID, cards[0].ID)

	none, err := f.catalog.ListGames(f.ctx, alice, models.GameFilter{GameTypeID: ptr(int64(3))})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListGamesEventCounts(t *testing.T) {
	f := newFixture(t)
	alice := f.gamer(t, "alice")
	bob := f.gamer(t, "bob")
	catan := f.game(t, alice, "Catan", 1)
	uno := f.game(t, bob, "Uno", 2)
	f.event(t, alice, catan.ID)
	f.event(t, bob, catan.ID)
	f.event(t, bob, catan.ID)

	games, err := f.catalog.ListGames(f.ctx, bob, models.GameFilter{})
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, catan.ID, games[0].ID)
	assert.Equal(t, 3, *games[0].EventCount)
	assert.Equal(t, 2, *games[0].UserEventCount)
	assert.Equal(t, uno.ID, games[1].ID)
	assert.Equal(t, 0, *games[1].EventCount)
	assert.Equal(t, 0, *games[1].UserEventCount)

	single, err := f.catalog.GetGame(f.ctx, catan.ID)
	require.NoError(t, err)
	assert.Nil(t, single.EventCount)
	assert.Equal(t, alice.ID, single.Owner.ID)
}

func TestDeleteGamePermission(t *testing.T) {
	f := newFixture(t)
	alice := f.gamer(t, "alice")
	bob := f.gamer(t, "bob")
	catan := f.game(t, alice, "Catan", 1)
	e := f.event(t, bob, catan.ID)
	require.NoError(t, f.events.Join(f.ctx, e.ID, bob))

	err := f.catalog.DeleteGame(f.ctx, bob, catan.ID)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	_, err = f.catalog.GetGame(f.ctx, catan.ID)
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteGame(f.ctx, alice, catan.ID))

	_, err = f.catalog.GetGame(f.ctx, catan.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.events.GetEvent(f.ctx, e.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	rows, err := f.store.Attendance.ListByEvents(f.ctx, []int64{e.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)

	last := f.notifier.sent[len(f.notifier.sent)-1]
	assert.Equal(t, comm.GameDeleted, last.Type)
	assert.Equal(t, catan.ID, last.GameID)
	assert.Equal(t, []int64{e.ID}, last.EventIDs)
	assert.ErrorIs(t, f.catalog.DeleteGame(f.ctx, alice, catan.ID), models.ErrNotFound)
}

func TestUpdateGameKeepsOwner(t *testing.T) {
	f := newFixture(t)
	alice := f.gamer(t, "alice")
	catan := f.game(t, alice, "Catan", 1)

	in := gameInput("Catan: Seafarers", 3)
	in.NumberOfPlayers = ptr(6)
	require.NoError(t, f.catalog.UpdateGame(f.ctx, catan.ID, in))

	got, err := f.catalog.GetGame(f.ctx, catan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Catan: Seafarers", got.Title)
	assert.Equal(t, 6, got.NumberOfPlayers)
	assert.Equal(t, int64(3), got.GameType.ID)
	assert.Equal(t, alice.ID, got.OwnerID)

	assert.ErrorIs(t, f.catalog.UpdateGame(f.ctx, 999, in), models.ErrNotFound)
}

func TestGameValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.gamer(t, "alice")

	tests := []struct {
		name   string
		mutate func(*GameInput)
		field  string
	}{
		{"missing title", func(in *GameInput) { in.Title = "" }, "title"},
		{"long maker", func(in *GameInput) { in.Maker = string(make([]byte, 56)) }, "maker"},
		{"zero players", func(in *GameInput) { in.NumberOfPlayers = ptr(0) }, "number_of_players"},
		{"missing skill level", func(in *GameInput) { in.SkillLevel = nil }, "skill_level"},
		{"missing game type", func(in *GameInput) { in.GameType = nil }, "game_type"},
		{"unknown game type", func(in *GameInput) { in.GameType = ptr(int64(404)) }, "game_type"},
		{"players beyond integer column", func(in *GameInput) { in.NumberOfPlayers = ptr(3_000_000_000) }, "number_of_players"},
		{"skill level beyond integer column", func(in *GameInput) { in.SkillLevel = ptr(3_000_000_000) }, "skill_level"},
		{"skill level below integer column", func(in *GameInput) { in.SkillLevel = ptr(-3_000_000_000) }, "skill_level"},
		{"null byte in title", func(in *GameInput) { in.Title = "Cat\x00an" }, "title"},
		{"null byte in maker", func(in *GameInput) { in.Maker = "Kosmos\x00" }, "maker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := gameInput("Catan", 1)
			tt.mutate(&in)

			_, err := f.catalog.CreateGame(f.ctx, alice, in)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	// skill level zero and the integer column bounds are valid values
	for _, level := range []int{0, -2147483648, 2147483647} {
		in := gameInput("Catan", 1)
		in.SkillLevel = ptr(level)
		_, err := f.catalog.CreateGame(f.ctx, alice, in)
		assert.NoError(t, err, level)
	}

	// nothing rejected reached the store
	games, err := f.catalog.ListGames(f.ctx, alice, models.GameFilter{})
	require.NoError(t, err)
	assert.Len(t, games, 3)
}

func TestGameTypes(t *testing.T) {
	f := newFixture(t)

	types, err := f.catalog.ListGameTypes(f.ctx)
	require.NoError(t, err)
	require.Len(t, types, 3)

	gt, err := f.catalog.GetGameType(f.ctx, types[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Card game", gt.Label)

	_, err = f.catalog.GetGameType(f.ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
