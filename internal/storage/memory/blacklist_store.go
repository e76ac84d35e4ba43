package memory

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// BlacklistStore is an in-memory implementation of storage.BlacklistStore.
type BlacklistStore struct {
	src stateSource
	mu  rwLocker
}

// Compile-time interface check.
var _ storage.BlacklistStore = (*BlacklistStore)(nil)

// Insert adds a new entry. Returns ErrDuplicateKey if the address exists.
func (s *BlacklistStore) Insert(_ context.Context, e *domain.BlacklistEntry) error {
	if e == nil || e.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.blacklist[e.Address]; exists {
		return storage.ErrDuplicateKey
	}
	entry := *e
	st.blacklist[e.Address] = &entry
	return nil
}

// Get retrieves an entry by address. Returns ErrNotFound if it does not
// exist.
func (s *BlacklistStore) Get(_ context.Context, address string) (*domain.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.src.current().blacklist[address]
	if !exists {
		return nil, storage.ErrNotFound
	}
	entry := *e
	return &entry, nil
}

// Delete removes an entry. Returns ErrNotFound if it does not exist.
func (s *BlacklistStore) Delete(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.blacklist[address]; !exists {
		return storage.ErrNotFound
	}
	delete(st.blacklist, address)
	return nil
}
