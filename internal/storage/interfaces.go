package storage

import (
	"context"

	"mobula-token-fetch/internal/domain"
)

// TokenDetailStore persists fetched token detail documents. Every write is
// an independent insert; documents are never updated or deleted.
type TokenDetailStore interface {
	// Insert adds one document. Returns ErrInvalidInput for nil or
	// address-less documents.
	Insert(ctx context.Context, doc *domain.TokenDetailDocument) error

	// Ping verifies the backend is reachable. Called once before the
	// fetch loop starts.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
