package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
	"github.com/custodia-labs/toolbridge/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the credential record in memory.
// It counts saves so tests can assert on persistence.
type CredentialStore struct {
	mu     sync.RWMutex
	record *domain.CredentialRecord
	saves  int
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Load returns a copy of the stored record, or nil if none was saved.
func (s *CredentialStore) Load(_ context.Context) (*domain.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return nil, nil
	}
	rec := *s.record
	rec.Scopes = append([]string(nil), s.record.Scopes...)
	return &rec, nil
}

// Save replaces the stored record.
func (s *CredentialStore) Save(_ context.Context, rec domain.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Scopes = append([]string(nil), rec.Scopes...)
	s.record = &rec
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *CredentialStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
