package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
)

// Ensure LedgerService implements the interface.
var _ driving.LedgerService = (*LedgerService)(nil)

// LedgerService provides read access to the processed-ID ledger.
type LedgerService struct {
	store driven.LedgerStore
}

// NewLedgerService creates a ledger service.
func NewLedgerService(store driven.LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// List returns processed IDs in recorded order.
func (s *LedgerService) List(ctx context.Context) ([]string, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return ledger.IDs(), nil
}

// Count returns the number of processed IDs.
func (s *LedgerService) Count(ctx context.Context) (int, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}
	return ledger.Len(), nil
}
