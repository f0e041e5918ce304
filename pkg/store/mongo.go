package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/errors"
)

// MongoConfig configures a Mongo-backed album store.
type MongoConfig struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Empty means "photowall".
	Database string

	// Collection is the collection name. Empty means "albums".
	Collection string

	// ConnectTimeout bounds the initial connect and ping. Zero means 10s.
	ConnectTimeout time.Duration
}

// MongoStore persists albums in MongoDB. Albums are stored as documents
// via their bson tags, one document per album, keyed by album ID.
// Suitable for production multi-instance deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = "photowall"
	}
	if cfg.Collection == "" {
		cfg.Collection = "albums"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves an album by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (album.Album, error) {
	var a album.Album
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return album.Album{}, ErrAlbumNotFound
	}
	if err != nil {
		return album.Album{}, errors.Wrap(errors.ErrCodeStore, err, "get album %s", id)
	}
	return a, nil
}

// Put stores an album, replacing any existing one with the same ID.
func (s *MongoStore) Put(ctx context.Context, a album.Album) error {
	if err := validateForPut(a); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": a.ID}, a, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "put album %s", a.ID)
	}
	return nil
}

// Delete removes an album.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete album %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// List returns the stored album IDs, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"id": 1}).
		SetSort(bson.M{"id": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list albums")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode album id")
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list albums")
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
