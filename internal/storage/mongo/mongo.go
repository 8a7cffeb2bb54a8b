// Package mongo implements storage.TokenDetailStore on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultServerSelectionTimeout bounds how long connect and ping wait for a
// reachable server.
const DefaultServerSelectionTimeout = 10 * time.Second

// Conn wraps a mongo.Client for dependency injection.
type Conn struct {
	client *mongo.Client
}

// Connect creates a client and verifies liveness with an explicit ping.
func Connect(ctx context.Context, uri string) (*Conn, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(DefaultServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Conn{client: client}, nil
}

// Collection returns a handle to the named collection.
func (c *Conn) Collection(db, name string) *mongo.Collection {
	return c.client.Database(db).Collection(name)
}

// Ping re-verifies the connection.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
