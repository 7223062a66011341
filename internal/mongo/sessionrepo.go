package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollection = "sessions"

// sessionEntry is one key-value pair scoped to a browser session. The
// composite _id keeps one document per (session, key) so Set is a plain
// upsert.
type sessionEntry struct {
	ID        string    `bson:"_id"`
	SessionID string    `bson:"session_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SessionRepo is the MongoDB-backed session.Store.
type SessionRepo struct {
	base   *BaseRepo
	logger apt.Logger
}

func NewSessionRepo(base *BaseRepo, logger apt.Logger) *SessionRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &SessionRepo{
		base:   base,
		logger: logger,
	}
}

func (r *SessionRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(sessionCollection)
}

func (r *SessionRepo) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var entry sessionEntry
	err := r.collection().FindOne(ctx, bson.M{"_id": entryID(sessionID, key)}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read session entry: %w", err)
	}
	return entry.Value, true, nil
}

func (r *SessionRepo) Set(ctx context.Context, sessionID, key, value string) error {
	entry := sessionEntry{
		ID:        entryID(sessionID, key),
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, opts); err != nil {
		return fmt.Errorf("cannot write session entry: %w", err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, entryID(sessionID, key))
	}

	if _, err := r.collection().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("cannot delete session entries: %w", err)
	}
	return nil
}

func entryID(sessionID, key string) string {
	return sessionID + ":" + key
}
