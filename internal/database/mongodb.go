package database

import (
	"context"
	"fmt"
	"time"

	"github.com/meanstack/userapi/internal/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Store is the result of a successful bootstrap.
type Store struct {
	Client *mongo.Client
	Users  *mongo.Collection
}

// Bootstrap connects, selects dbName, installs the users schema validator and returns the
// users collection handle. It runs once at startup; any failure is returned unchanged in
// kind so the caller can abort before serving.
func Bootstrap(ctx context.Context, uri, dbName string, timeout time.Duration) (*Store, error) {
	client, err := ConnectMongo(ctx, uri, timeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := EnsureValidator(sctx, db, users.CollectionName, users.Validator()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("apply users schema: %w", err)
	}
	return &Store{Client: client, Users: db.Collection(users.CollectionName)}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
