// Package memory provides an in-memory implementation of the storage
// interfaces. Transactions run against a clone of the full state that is
// swapped in atomically on commit, so readers never observe a transaction's
// intermediate writes and a failed transaction leaves no trace.
package memory

import (
	"context"
	"sync"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/storage"
)

// state holds every record collection.
type state struct {
	configs   map[string]*domain.TokenConfig
	roles     map[string]*domain.RoleRecord
	blacklist map[string]*domain.BlacklistEntry
	events    []*domain.Event
}

func newState() *state {
	return &state{
		configs:   make(map[string]*domain.TokenConfig),
		roles:     make(map[string]*domain.RoleRecord),
		blacklist: make(map[string]*domain.BlacklistEntry),
	}
}

// clone deep-copies the state for use inside a transaction.
func (st *state) clone() *state {
	c := &state{
		configs:   make(map[string]*domain.TokenConfig, len(st.configs)),
		roles:     make(map[string]*domain.RoleRecord, len(st.roles)),
		blacklist: make(map[string]*domain.BlacklistEntry, len(st.blacklist)),
		events:    make([]*domain.Event, len(st.events)),
	}
	for k, v := range st.configs {
		c.configs[k] = copyConfig(v)
	}
	for k, v := range st.roles {
		c.roles[k] = copyRole(v)
	}
	for k, v := range st.blacklist {
		entry := *v
		c.blacklist[k] = &entry
	}
	copy(c.events, st.events)
	return c
}

// rwLocker abstracts the locking strategy: live stores lock the Store's
// mutex, transaction-bound stores run single-threaded against a private
// clone and skip locking.
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noLock is the locking strategy for transaction-bound stores.
type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}

// Store is the in-memory record store and transaction manager.
type Store struct {
	mu sync.RWMutex
	st *state

	// txMu admits one transaction at a time, realizing the serialized
	// execution model without application-level locks in the engine.
	txMu sync.Mutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Compile-time interface check.
var _ storage.TxManager = (*Store)(nil)

// InTx runs fn as one atomic transaction. fn operates on a private clone of
// the state; the clone replaces the live state only if fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, st storage.Stores) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	clone := s.st.clone()
	s.mu.RUnlock()

	stores := storesFor(clone, noLock{})
	if err := fn(ctx, stores); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = clone
	s.mu.Unlock()
	return nil
}

// Stores returns live read/write access to the current state, outside any
// transaction. Used by the gate's read path and by test setup.
func (s *Store) Stores() storage.Stores {
	return storesFor(nil, liveLock{s})
}

// liveLock locks the Store's mutex and resolves the current state on each
// access.
type liveLock struct{ s *Store }

func (l liveLock) Lock()    { l.s.mu.Lock() }
func (l liveLock) Unlock()  { l.s.mu.Unlock() }
func (l liveLock) RLock()   { l.s.mu.RLock() }
func (l liveLock) RUnlock() { l.s.mu.RUnlock() }

// current returns the state a store should operate on: the transaction
// clone if bound to one, otherwise the live state.
func (l liveLock) current() *state { return l.s.st }

// stateSource resolves the state at access time. Transaction-bound stores
// are pinned to their clone; live stores follow the swapped-in state.
type stateSource interface {
	current() *state
}

// pinned is a stateSource for transaction clones.
type pinned struct{ st *state }

func (p pinned) current() *state { return p.st }

func storesFor(st *state, mu rwLocker) storage.Stores {
	var src stateSource
	if st != nil {
		src = pinned{st}
	} else {
		src = mu.(liveLock)
	}
	return storage.Stores{
		Configs:   &ConfigStore{src: src, mu: mu},
		Roles:     &RoleStore{src: src, mu: mu},
		Blacklist: &BlacklistStore{src: src, mu: mu},
		Events:    &EventStore{src: src, mu: mu},
	}
}

func copyConfig(c *domain.TokenConfig) *domain.TokenConfig {
	cp := *c
	if c.SupplyCap != nil {
		cap := *c.SupplyCap
		cp.SupplyCap = &cap
	}
	return &cp
}

func copyRole(r *domain.RoleRecord) *domain.RoleRecord {
	cp := *r
	if r.MintQuota != nil {
		quota := *r.MintQuota
		cp.MintQuota = &quota
	}
	return &cp
}
