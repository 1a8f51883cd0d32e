package service

import (
	"context"
	"errors"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

type Notifier interface {
	Notify(ctx context.Context, n comm.Notification) error
}

// Notifiers fans a notification out to every member.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n comm.Notification) error {
	var errs []error
	for _, x := range ns {
		if err := x.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notify is best effort: the mutation it reports has already been committed.
func notify(ctx context.Context, notifier Notifier, n comm.Notification) {
	if notifier == nil {
		return
	}
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Warnf("notify %s (event %d, game %d): %v", n.Type, n.EventID, n.GameID, err)
	}
}
