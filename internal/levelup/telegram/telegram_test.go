package telegram

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent chan tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent <- c.(tgbotapi.MessageConfig)
	return tgbotapi.Message{}, f.err
}

func receive(t *testing.T, ch chan tgbotapi.MessageConfig, n int) []tgbotapi.MessageConfig {
	t.Helper()
	var out []tgbotapi.MessageConfig
	for i := 0; i < n; i++ {
		select {
		case m := <-ch:
			out = append(out, m)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "timed out waiting for telegram send")
		}
	}
	return out
}

func TestNotifySendsToEveryChat(t *testing.T) {
	bot := &fakeBot{sent: make(chan tgbotapi.MessageConfig, 4)}
	tn := &Notifier{bot: bot, chatIDs: []int64{11, 22}}

	err := tn.Notify(context.Background(), comm.Notification{Type: comm.GamerJoined, EventID: 7, GamerID: 5})
	require.NoError(t, err)

	msgs := receive(t, bot.sent, 2)
	ids := []int64{msgs[0].ChatID, msgs[1].ChatID}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, []int64{11, 22}, ids)
	assert.Equal(t, "gamer 5 joined event 7", msgs[0].Text)
}

func TestNotifyIgnoresSendFailures(t *testing.T) {
	bot := &fakeBot{sent: make(chan tgbotapi.MessageConfig, 1), err: errors.New("telegram: too many requests")}
	tn := &Notifier{bot: bot, chatIDs: []int64{11}}

	assert.NoError(t, tn.Notify(context.Background(), comm.Notification{Type: comm.GamerLeft}))
	receive(t, bot.sent, 1)
}

func TestNewRequiresChats(t *testing.T) {
	_, err := New("token", nil)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "gamer 3 deleted game 9 and its events",
		Format(comm.Notification{Type: comm.GameDeleted, GameID: 9, GamerID: 3}))
	assert.Equal(t, "gamer 3 scheduled event 4 (game 9)",
		Format(comm.Notification{Type: comm.EventCreated, EventID: 4, GameID: 9, GamerID: 3}))
	assert.Equal(t, "custom by gamer 1", Format(comm.Notification{Type: "custom", GamerID: 1}))
}
