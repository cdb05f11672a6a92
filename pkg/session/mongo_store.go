package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store with one document per session.
// Documents follow the Session layout: fields live in a sub-document keyed by
// field name.
type MongoStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

// MongoStoreOption is a functional option for MongoStore
type MongoStoreOption func(*mongoStoreConfig)

type mongoStoreConfig struct {
	collection string
	ttl        time.Duration
}

// WithMongoCollection sets the collection name (default "sessions")
func WithMongoCollection(name string) MongoStoreOption {
	return func(c *mongoStoreConfig) {
		if name != "" {
			c.collection = name
		}
	}
}

// WithMongoTTL sets the session lifetime (default 24h)
func WithMongoTTL(ttl time.Duration) MongoStoreOption {
	return func(c *mongoStoreConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewMongoStore creates a MongoDB backed session store
func NewMongoStore(db *mongo.Database, opts ...MongoStoreOption) *MongoStore {
	cfg := &mongoStoreConfig{
		collection: "sessions",
		ttl:        DefaultConfig().TTL,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &MongoStore{
		coll: db.Collection(cfg.collection),
		ttl:  cfg.ttl,
	}
}

// EnsureIndexes creates the TTL index that lets MongoDB drop expired sessions
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// StartNew creates an empty session
func (s *MongoStore) StartNew(ctx context.Context) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	if _, err := s.coll.InsertOne(ctx, NewSession(id, s.ttl)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errors.Join(ErrStore, errIDCollision, err)
		}
		return "", errors.Join(ErrStore, err)
	}

	return id, nil
}

// Exists reports whether a live session exists
func (s *MongoStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, liveFilter(sessionID), options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrStore, err)
	}
	return n > 0, nil
}

// GetField returns a session field
func (s *MongoStore) GetField(ctx context.Context, sessionID, key string) ([]byte, error) {
	if !validMongoKey(key) {
		return nil, ErrInvalidFieldKey
	}

	var doc Session
	err := s.coll.FindOne(ctx, liveFilter(sessionID),
		options.FindOne().SetProjection(bson.M{"fields." + key: 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}

	value, ok := doc.Field(key)
	if !ok {
		return nil, ErrFieldNotFound
	}
	return value, nil
}

// SetField stores a field and extends the session lifetime
func (s *MongoStore) SetField(ctx context.Context, sessionID, key string, value []byte) error {
	if !validMongoKey(key) {
		return ErrInvalidFieldKey
	}
	if value == nil {
		value = []byte{}
	}

	res, err := s.coll.UpdateOne(ctx, liveFilter(sessionID), bson.M{
		"$set": bson.M{
			"fields." + key: value,
			"expires_at":    time.Now().Add(s.ttl),
		},
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteField removes a session field
func (s *MongoStore) DeleteField(ctx context.Context, sessionID, key string) error {
	if !validMongoKey(key) {
		return ErrInvalidFieldKey
	}

	res, err := s.coll.UpdateOne(ctx, liveFilter(sessionID), bson.M{
		"$unset": bson.M{"fields." + key: ""},
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RegenerateID copies the session document under a fresh ID and removes the
// old one. _id is immutable in MongoDB, so this is an insert plus delete.
func (s *MongoStore) RegenerateID(ctx context.Context, sessionID string) (string, error) {
	var doc Session
	if err := s.coll.FindOne(ctx, liveFilter(sessionID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrSessionNotFound
		}
		return "", errors.Join(ErrStore, err)
	}

	newID, err := generateID()
	if err != nil {
		return "", err
	}

	doc.ID = newID
	if _, err := s.coll.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", errors.Join(ErrStore, errIDCollision, err)
		}
		return "", errors.Join(ErrStore, err)
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		_, _ = s.coll.DeleteOne(ctx, bson.M{"_id": newID})
		return "", errors.Join(ErrStore, err)
	}

	return newID, nil
}

// Destroy removes a session. Unknown IDs are ignored.
func (s *MongoStore) Destroy(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteExpired removes all expired sessions. The TTL index does the same
// lazily; this is for deployments that skip EnsureIndexes.
func (s *MongoStore) DeleteExpired(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}}); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func liveFilter(sessionID string) bson.M {
	return bson.M{
		"_id":        sessionID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
}

// validMongoKey rejects keys that MongoDB would interpret as paths or operators
func validMongoKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, ".$")
}
