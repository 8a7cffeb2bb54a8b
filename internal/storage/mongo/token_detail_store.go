package mongo

import (
	"context"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mobula-token-fetch/internal/domain"
	"mobula-token-fetch/internal/storage"
)

// TokenDetailStore is a MongoDB implementation of storage.TokenDetailStore.
type TokenDetailStore struct {
	conn *Conn
	db   string
	coll string
}

// NewTokenDetailStore creates a store writing to the given database and
// collection.
func NewTokenDetailStore(conn *Conn, db, coll string) *TokenDetailStore {
	return &TokenDetailStore{conn: conn, db: db, coll: coll}
}

// Insert adds one document: {address, fetched_at, data}. The raw payload is
// decoded to an untyped value so it lands as a nested document rather than a
// byte blob.
func (s *TokenDetailStore) Insert(ctx context.Context, doc *domain.TokenDetailDocument) error {
	if doc == nil || doc.Address == "" {
		return storage.ErrInvalidInput
	}

	var data any
	if len(doc.Data) > 0 {
		if err := json.Unmarshal(doc.Data, &data); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}

	_, err := s.conn.Collection(s.db, s.coll).InsertOne(ctx, bson.M{
		"address":    doc.Address,
		"fetched_at": doc.FetchedAt,
		"data":       data,
	})
	if err != nil {
		return fmt.Errorf("insert token details for %s: %w", doc.Address, err)
	}
	return nil
}

// Ping verifies the connection.
func (s *TokenDetailStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Close disconnects the underlying client.
func (s *TokenDetailStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
