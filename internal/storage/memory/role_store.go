package memory

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// RoleStore is an in-memory implementation of storage.RoleStore.
type RoleStore struct {
	src stateSource
	mu  rwLocker
}

// Compile-time interface check.
var _ storage.RoleStore = (*RoleStore)(nil)

// Insert adds a new role record. Returns ErrDuplicateKey if the address
// exists.
func (s *RoleStore) Insert(_ context.Context, r *domain.RoleRecord) error {
	if r == nil || r.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.roles[r.Address]; exists {
		return storage.ErrDuplicateKey
	}
	st.roles[r.Address] = copyRole(r)
	return nil
}

// Get retrieves a role record by address. Returns ErrNotFound if it does
// not exist.
func (s *RoleStore) Get(_ context.Context, address string) (*domain.RoleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.src.current().roles[address]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRole(r), nil
}

// Update persists changes to an existing record.
func (s *RoleStore) Update(_ context.Context, r *domain.RoleRecord) error {
	if r == nil || r.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.roles[r.Address]; !exists {
		return storage.ErrNotFound
	}
	st.roles[r.Address] = copyRole(r)
	return nil
}

// Delete removes a record. Returns ErrNotFound if it does not exist.
func (s *RoleStore) Delete(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.roles[address]; !exists {
		return storage.ErrNotFound
	}
	delete(st.roles, address)
	return nil
}
