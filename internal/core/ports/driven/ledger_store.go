package driven

import (
	"context"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// LedgerStore persists the processed-ID ledger.
type LedgerStore interface {
	// Load returns the persisted ledger.
	// A missing backing store yields an empty ledger, not an error.
	Load(ctx context.Context) (*domain.Ledger, error)

	// Save replaces the persisted ledger with the full contents of l.
	Save(ctx context.Context, l *domain.Ledger) error
}
