package mongo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"

	"mobula-token-fetch/internal/domain"
	"mobula-token-fetch/internal/storage"
)

// setupTestMongo creates a MongoDB container for testing.
// Returns a cleanup function that must be called after tests complete.
func setupTestMongo(t *testing.T) (*Conn, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start mongodb container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get connection string")

	conn, err := Connect(ctx, uri)
	require.NoError(t, err, "failed to connect")

	cleanup := func() {
		_ = conn.Close(ctx)
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return conn, cleanup
}

func TestTokenDetailStore_Insert(t *testing.T) {
	conn, cleanup := setupTestMongo(t)
	defer cleanup()

	store := NewTokenDetailStore(conn, "mobula", "Token")
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Millisecond)

	doc := &domain.TokenDetailDocument{
		Address:   "FUAfBo2jgks6gB4Z4LfZkqSZgzNucisEHqnNebaRxM1P",
		FetchedAt: ts,
		Data:      json.RawMessage(`{"name":"Test Token","price":1.5}`),
	}
	require.NoError(t, store.Insert(ctx, doc))

	var stored struct {
		Address   string    `bson:"address"`
		FetchedAt time.Time `bson:"fetched_at"`
		Data      bson.M    `bson:"data"`
	}
	err := conn.Collection("mobula", "Token").
		FindOne(ctx, bson.M{"address": doc.Address}).
		Decode(&stored)
	require.NoError(t, err)

	assert.Equal(t, doc.Address, stored.Address)
	assert.True(t, stored.FetchedAt.Equal(ts), "expected %v, got %v", ts, stored.FetchedAt)
	assert.Equal(t, "Test Token", stored.Data["name"])
	assert.Equal(t, 1.5, stored.Data["price"])
}

func TestTokenDetailStore_SharedRunTimestamp(t *testing.T) {
	conn, cleanup := setupTestMongo(t)
	defer cleanup()

	store := NewTokenDetailStore(conn, "mobula", "Token")
	ctx := context.Background()
	ts := time.Now().UTC().Truncate(time.Millisecond)

	for _, addr := range []string{"addr1", "addr2"} {
		doc := &domain.TokenDetailDocument{
			Address:   addr,
			FetchedAt: ts,
			Data:      json.RawMessage(`{}`),
		}
		require.NoError(t, store.Insert(ctx, doc))
	}

	count, err := conn.Collection("mobula", "Token").
		CountDocuments(ctx, bson.M{"fetched_at": ts})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count, "documents of one run share fetched_at")
}

func TestTokenDetailStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestMongo(t)
	defer cleanup()

	store := NewTokenDetailStore(conn, "mobula", "Token")
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.TokenDetailDocument{}), storage.ErrInvalidInput)
}
