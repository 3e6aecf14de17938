package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
)

// Ensure LedgerStore implements the interface.
var _ driven.LedgerStore = (*LedgerStore)(nil)

// LedgerStore is an in-memory implementation of driven.LedgerStore.
type LedgerStore struct {
	mu    sync.RWMutex
	ids   []string
	saves int
}

// NewLedgerStore creates a new in-memory ledger store seeded with ids.
func NewLedgerStore(ids ...string) *LedgerStore {
	return &LedgerStore{ids: append([]string(nil), ids...)}
}

// Load returns a fresh ledger holding the stored IDs.
func (s *LedgerStore) Load(_ context.Context) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NewLedger(s.ids...), nil
}

// Save replaces the stored IDs with the ledger contents.
func (s *LedgerStore) Save(_ context.Context, ledger *domain.Ledger) error {
	if ledger == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ledger.IDs()
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *LedgerStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
