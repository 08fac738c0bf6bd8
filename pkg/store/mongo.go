package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/vegaline/pkg/errors"
)

// MongoConfig configures the MongoDB-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name. Defaults to "vegaline".
	Database string

	// Collection is the collection name. Defaults to "charts".
	Collection string

	// ConnectTimeout bounds the initial connect and ping. Defaults to 10s.
	ConnectTimeout time.Duration
}

// MongoStore is a MongoDB-backed chart store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo URI is empty")
	}
	if cfg.Database == "" {
		cfg.Database = "vegaline"
	}
	if cfg.Collection == "" {
		cfg.Collection = "charts"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo at %s", cfg.URI)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo at %s", cfg.URI)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a chart, replacing any existing document with the same ID.
func (s *MongoStore) Save(ctx context.Context, c *Chart) error {
	if c.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "chart ID is empty")
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save chart %s", c.ID)
	}
	return nil
}

// Get retrieves a chart by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Chart, error) {
	var c Chart
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get chart %s", id)
	}
	return &c, nil
}

// List returns all charts, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Chart, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list charts")
	}
	defer cur.Close(ctx)

	var charts []Chart
	if err := cur.All(ctx, &charts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode charts")
	}
	return charts, nil
}

// Delete removes a chart by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete chart %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
