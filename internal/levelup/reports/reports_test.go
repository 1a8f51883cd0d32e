package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/avvvet/levelup-services/internal/levelup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEventsByUser(t *testing.T) {
	rows := []models.UserEventRow{
		{ID: 10, Date: "2024-05-01", Time: "19:00:00", Title: "Catan", OrganizerID: 1, FullName: "Alice"},
		{ID: 11, Date: "2024-05-02", Time: "18:00:00", Title: "Uno", OrganizerID: 2, FullName: "Bob"},
		{ID: 12, Date: "2024-05-03", Time: "20:30:00", Title: "Root", OrganizerID: 1, FullName: "Alice"},
	}

	got := GroupEventsByUser(rows)

	want := []UserEvents{
		{GamerID: 1, FullName: "Alice", Events: []EventSummary{
			{ID: 10, Date: "2024-05-01", Time: "19:00:00", GameName: "Catan"},
			{ID: 12, Date: "2024-05-03", Time: "20:30:00", GameName: "Root"},
		}},
		{GamerID: 2, FullName: "Bob", Events: []EventSummary{
			{ID: 11, Date: "2024-05-02", Time: "18:00:00", GameName: "Uno"},
		}},
	}
	assert.Equal(t, want, got)
}

func TestGroupEventsByUserKeepsFirstAppearanceOrder(t *testing.T) {
	rows := []models.UserEventRow{
		{ID: 1, OrganizerID: 9, FullName: "Zed"},
		{ID: 2, OrganizerID: 3, FullName: "Amy"},
		{ID: 3, OrganizerID: 9, FullName: "Zed"},
		{ID: 4, OrganizerID: 5, FullName: "Max"},
	}

	got := GroupEventsByUser(rows)

	require.Len(t, got, 3)
	assert.Equal(t, int64(9), got[0].GamerID)
	assert.Equal(t, int64(3), got[1].GamerID)
	assert.Equal(t, int64(5), got[2].GamerID)
	assert.Len(t, got[0].Events, 2)
}

func TestGroupEventsByUserEmpty(t *testing.T) {
	got := GroupEventsByUser(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroupGamesByUser(t *testing.T) {
	rows := []models.UserGameRow{
		{ID: 1, Title: "Catan", GamerID: 1, FullName: "Alice"},
		{ID: 2, Title: "Uno", GamerID: 2, FullName: "Bob"},
		{ID: 3, Title: "Root", GamerID: 1, FullName: "Alice"},
	}

	got := GroupGamesByUser(rows)

	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].FullName)
	assert.Equal(t, []int64{1, 3}, []int64{got[0].Games[0].ID, got[0].Games[1].ID})
	assert.Equal(t, "Bob", got[1].FullName)
	assert.Len(t, got[1].Games, 1)

	assert.NotNil(t, GroupGamesByUser(nil))
}

type fakeSource struct {
	events []models.UserEventRow
	games  []models.UserGameRow
	err    error
}

func (f fakeSource) EventsByUser(context.Context) ([]models.UserEventRow, error) {
	return f.events, f.err
}

func (f fakeSource) GamesByUser(context.Context) ([]models.UserGameRow, error) {
	return f.games, f.err
}

func TestGenerator(t *testing.T) {
	src := fakeSource{
		events: []models.UserEventRow{{ID: 1, OrganizerID: 1, FullName: "Alice", Title: "Catan"}},
		games:  []models.UserGameRow{{ID: 1, GamerID: 1, FullName: "Alice", Title: "Catan"}},
	}
	g := NewGenerator(src)

	events, err := g.UserEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Catan", events[0].Events[0].GameName)

	games, err := g.UserGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)

	boom := errors.New("boom")
	_, err = NewGenerator(fakeSource{err: boom}).UserEvents(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, UserEventsTemplate, map[string]any{
		"userevent_list": GroupEventsByUser([]models.UserEventRow{
			{ID: 1, Date: "2024-05-01", Time: "19:00:00", Title: "Catan <deluxe>", OrganizerID: 1, FullName: "Alice Smith"},
		}),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Alice Smith")
	assert.Contains(t, buf.String(), "Catan &lt;deluxe&gt; on 2024-05-01 at 19:00:00")

	buf.Reset()
	err = r.Render(&buf, UserGamesTemplate, map[string]any{"usergame_list": []UserGames{}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No games have been added.")

	assert.Error(t, r.Render(&buf, "missing.html", nil))
}
