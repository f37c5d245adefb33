package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"doc-pager/config"
)

const (
	AddressesCollection = "addresses"
	UsersCollection     = "users"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config values.
func Init(ctx context.Context, cfg config.MongoConfig) error {
	var initErr error
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			initErr = err
			return
		}
		client = cl
		db = client.Database(cfg.Database)

		if err := EnsureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Disconnect closes the global client, if any.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Ping runs the ping command against the database; used by health checks.
func Ping(ctx context.Context, d *mongo.Database) error {
	return d.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// IndexModels lists the indexes every collection needs for filtered, sorted pagination.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		AddressesCollection: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_created_at_desc"),
			},
			// filter field first, sort field second
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_status_created_at"),
			},
			{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().SetName("idx_user_id"),
			},
			{
				Keys:    bson.D{{Key: "orderNumber", Value: 1}},
				Options: options.Index().SetName("uniq_order_number").SetUnique(true),
			},
		},
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_users_created_at_desc"),
			},
		},
	}
}

// EnsureIndexes creates the indexes from IndexModels. CreateMany is idempotent for
// identical specs.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	for col, models := range IndexModels() {
		if _, err := d.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
