package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	f.subject, f.data = subj, data
	return f.err
}

func TestNotifyPublishesWSMessage(t *testing.T) {
	conn := &fakeConn{}
	b := NewBroker(conn, "levelup.events")

	at := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	err := b.Notify(context.Background(), comm.Notification{
		Type: comm.GamerJoined, EventID: 7, GameID: 3, GamerID: 5, At: at,
	})
	require.NoError(t, err)
	assert.Equal(t, "levelup.events", conn.subject)

	var msg comm.WSMessage
	require.NoError(t, json.Unmarshal(conn.data, &msg))
	assert.Equal(t, comm.GamerJoined, msg.Type)
	assert.Empty(t, msg.SocketId)

	var n comm.Notification
	require.NoError(t, json.Unmarshal(msg.Data, &n))
	assert.Equal(t, int64(7), n.EventID)
	assert.Equal(t, int64(5), n.GamerID)
	assert.True(t, at.Equal(n.At))
}

func TestNotifyReturnsPublishError(t *testing.T) {
	b := NewBroker(&fakeConn{err: errors.New("nats: connection closed")}, "levelup.events")

	err := b.Notify(context.Background(), comm.Notification{Type: comm.GamerLeft})
	assert.EqualError(t, err, "nats: connection closed")
}

func TestNotifyHonorsCanceledContext(t *testing.T) {
	conn := &fakeConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewBroker(conn, "levelup.events").Notify(ctx, comm.Notification{Type: comm.GamerLeft})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, conn.data)
}
