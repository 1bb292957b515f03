package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/vclock"
)

// DefaultCollection is the collection notification records live in.
const DefaultCollection = "notifications"

// MongoStore is the document-store implementation of Store.
type MongoStore struct {
	coll *mongo.Collection
}

// MongoStoreOption configures a MongoStore.
type MongoStoreOption func(*mongoStoreConfig)

type mongoStoreConfig struct {
	collection string
}

// WithCollection overrides the collection name.
func WithCollection(name string) MongoStoreOption {
	return func(c *mongoStoreConfig) {
		if name != "" {
			c.collection = name
		}
	}
}

// NewMongoStore creates a store over the given database.
func NewMongoStore(db *mongo.Database, opts ...MongoStoreOption) *MongoStore {
	cfg := &mongoStoreConfig{collection: DefaultCollection}
	for _, opt := range opts {
		opt(cfg)
	}

	return &MongoStore{coll: db.Collection(cfg.collection)}
}

// EnsureIndexes creates the indexes the query paths rely on. Safe to call on
// every startup; existing indexes are left untouched.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "staffId", Value: 1}}},
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "isRead", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create notification indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, n Notification) error {
	if _, err := s.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find notification %s: %w", id, err)
	}
	return &n, nil
}

func (s *MongoStore) MarkRead(ctx context.Context, id string, clock vclock.Clock, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"isRead":      true,
			"vectorClock": clock,
			"updated_at":  at,
		}},
	)
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, shopID string, opts ListOptions) ([]Notification, error) {
	filter := s.scopeFilter(shopID, opts.StaffID)
	if opts.OnlyUnread {
		filter["isRead"] = false
	}
	if len(opts.Types) > 0 {
		filter["type"] = bson.M{"$in": opts.Types}
	}
	if opts.Since != nil {
		filter["created_at"] = bson.M{"$gte": *opts.Since}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notifications for shop %s: %w", shopID, err)
	}

	var out []Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications for shop %s: %w", shopID, err)
	}
	return out, nil
}

func (s *MongoStore) CountUnread(ctx context.Context, shopID, staffID string) (int64, error) {
	filter := s.scopeFilter(shopID, staffID)
	filter["isRead"] = false

	count, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count unread for shop %s: %w", shopID, err)
	}
	return count, nil
}

// scopeFilter builds the shop filter, optionally narrowed to records
// visible to one staff member: shop-wide broadcasts (no staffId field)
// plus records addressed to that staff id.
func (s *MongoStore) scopeFilter(shopID, staffID string) bson.M {
	filter := bson.M{"shopId": shopID}
	if staffID != "" {
		filter["$or"] = bson.A{
			bson.M{"staffId": staffID},
			bson.M{"staffId": bson.M{"$exists": false}},
			bson.M{"staffId": ""},
		}
	}
	return filter
}
