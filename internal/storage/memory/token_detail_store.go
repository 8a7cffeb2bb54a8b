// Package memory provides an in-memory storage.TokenDetailStore for tests
// and dry runs.
package memory

import (
	"context"
	"sync"

	"mobula-token-fetch/internal/domain"
	"mobula-token-fetch/internal/storage"
)

// TokenDetailStore is an in-memory implementation of storage.TokenDetailStore.
type TokenDetailStore struct {
	mu   sync.RWMutex
	docs []domain.TokenDetailDocument
}

// NewTokenDetailStore creates a new in-memory token detail store.
func NewTokenDetailStore() *TokenDetailStore {
	return &TokenDetailStore{}
}

// Insert adds one document. Duplicates are allowed; every run appends.
func (s *TokenDetailStore) Insert(_ context.Context, doc *domain.TokenDetailDocument) error {
	if doc == nil || doc.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docCopy := *doc
	docCopy.Data = append([]byte(nil), doc.Data...)
	s.docs = append(s.docs, docCopy)
	return nil
}

// GetByAddress returns all documents stored for an address, in insert order.
func (s *TokenDetailStore) GetByAddress(_ context.Context, address string) []domain.TokenDetailDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TokenDetailDocument
	for _, d := range s.docs {
		if d.Address == address {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of stored documents.
func (s *TokenDetailStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Ping always succeeds.
func (s *TokenDetailStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *TokenDetailStore) Close(_ context.Context) error { return nil }
