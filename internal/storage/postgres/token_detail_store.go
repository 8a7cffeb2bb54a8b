package postgres

import (
	"context"
	"fmt"

	"mobula-token-fetch/internal/domain"
	"mobula-token-fetch/internal/storage"
)

// TokenDetailStore is a PostgreSQL implementation of storage.TokenDetailStore.
type TokenDetailStore struct {
	pool *Pool
}

// NewTokenDetailStore creates a new PostgreSQL token detail store.
func NewTokenDetailStore(pool *Pool) *TokenDetailStore {
	return &TokenDetailStore{pool: pool}
}

// Insert adds one row to token_details. The table has no unique constraint;
// every run appends.
func (s *TokenDetailStore) Insert(ctx context.Context, doc *domain.TokenDetailDocument) error {
	if doc == nil || doc.Address == "" {
		return storage.ErrInvalidInput
	}

	data := []byte(doc.Data)
	if len(data) == 0 {
		data = nil // NULL, not the empty string (invalid jsonb)
	}

	query := `
		INSERT INTO token_details (address, fetched_at, data)
		VALUES ($1, $2, $3)
	`
	_, err := s.pool.Exec(ctx, query, doc.Address, doc.FetchedAt, data)
	if err != nil {
		return fmt.Errorf("insert token details for %s: %w", doc.Address, err)
	}
	return nil
}

// Ping verifies the connection.
func (s *TokenDetailStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the underlying pool.
func (s *TokenDetailStore) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}
