package activity

import (
	"testing"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewDocument(t *testing.T) {
	at := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	d := newDocument(comm.Notification{Type: comm.GamerJoined, EventID: 7, GamerID: 5, At: at}, time.Hour)

	_, err := uuid.Parse(d.ID)
	require.NoError(t, err)
	assert.Equal(t, comm.GamerJoined, d.Type)
	assert.Equal(t, at.Add(time.Hour), d.ExpiresAt)

	fresh := newDocument(comm.Notification{Type: comm.GamerLeft}, time.Hour)
	assert.False(t, fresh.At.IsZero())
	assert.NotEqual(t, d.ID, fresh.ID)
}

func TestDocumentBSONShape(t *testing.T) {
	at := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(newDocument(comm.Notification{Type: comm.GameDeleted, GameID: 3, GamerID: 5, At: at}, time.Minute))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Contains(t, m, "_id")
	assert.Contains(t, m, "expires_at")
	assert.Equal(t, int64(5), m["gamer_id"])
	assert.Equal(t, int64(3), m["game_id"])
	assert.NotContains(t, m, "event_id")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, int64(defaultLimit), clampLimit(0))
	assert.Equal(t, int64(defaultLimit), clampLimit(-3))
	assert.Equal(t, int64(10), clampLimit(10))
	assert.Equal(t, int64(maxLimit), clampLimit(1000))
}
