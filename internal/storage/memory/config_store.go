package memory

import (
	"context"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// ConfigStore is an in-memory implementation of storage.ConfigStore.
type ConfigStore struct {
	src stateSource
	mu  rwLocker
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Insert adds a new config. Returns ErrDuplicateKey if the address exists.
func (s *ConfigStore) Insert(_ context.Context, c *domain.TokenConfig) error {
	if c == nil || c.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.configs[c.Address]; exists {
		return storage.ErrDuplicateKey
	}
	st.configs[c.Address] = copyConfig(c)
	return nil
}

// Get retrieves a config by address. Returns ErrNotFound if it does not exist.
func (s *ConfigStore) Get(_ context.Context, address string) (*domain.TokenConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.src.current().configs[address]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyConfig(c), nil
}

// GetForUpdate behaves like Get. Transactions are serialized by the Store's
// transaction mutex, so no row lock is needed here.
func (s *ConfigStore) GetForUpdate(ctx context.Context, address string) (*domain.TokenConfig, error) {
	return s.Get(ctx, address)
}

// Update persists changes to an existing config.
func (s *ConfigStore) Update(_ context.Context, c *domain.TokenConfig) error {
	if c == nil || c.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.src.current()
	if _, exists := st.configs[c.Address]; !exists {
		return storage.ErrNotFound
	}
	st.configs[c.Address] = copyConfig(c)
	return nil
}
