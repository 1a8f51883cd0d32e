// Package activity keeps a short lived per gamer log of attendance notifications in MongoDB.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/levelup-services/internal/comm"
	"github.com/avvvet/levelup-services/internal/db"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "activity"

// document is the stored shape. expires_at drives the TTL index.
type document struct {
	comm.Activity `bson:",inline"`
	ExpiresAt     time.Time `bson:"expires_at"`
}

type Store struct {
	coll *mongo.Collection
	ttl  time.Duration
}

// NewStore ensures the TTL index exists and returns a store writing to the activity collection.
func NewStore(ctx context.Context, database *mongo.Database, ttl time.Duration) (*Store, error) {
	if err := db.CreateTTLIndexForCollection(ctx, database, Collection); err != nil {
		return nil, err
	}
	gamerIdx := mongo.IndexModel{Keys: bson.D{{Key: "gamer_id", Value: 1}, {Key: "at", Value: -1}}}
	if _, err := database.Collection(Collection).Indexes().CreateOne(ctx, gamerIdx); err != nil {
		return nil, fmt.Errorf("create gamer index on %s: %w", Collection, err)
	}

	return &Store{coll: database.Collection(Collection), ttl: ttl}, nil
}

// Notify records n. It implements service.Notifier.
func (s *Store) Notify(ctx context.Context, n comm.Notification) error {
	if _, err := s.coll.InsertOne(ctx, newDocument(n, s.ttl)); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the gamer's newest records first.
func (s *Store) Recent(ctx context.Context, gamerID int64, limit int64) ([]comm.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(clampLimit(limit))

	cur, err := s.coll.Find(ctx, bson.M{"gamer_id": gamerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}

	out := make([]comm.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Activity)
	}
	return out, nil
}

func newDocument(n comm.Notification, ttl time.Duration) document {
	at := n.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return document{
		Activity: comm.Activity{
			ID:       uuid.New().String(),
			Type:     n.Type,
			EventID:  n.EventID,
			GameID:   n.GameID,
			EventIDs: n.EventIDs,
			GamerID:  n.GamerID,
			At:       at,
		},
		ExpiresAt: at.Add(ttl),
	}
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

func clampLimit(limit int64) int64 {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	}
	return limit
}
