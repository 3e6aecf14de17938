package driving

import "context"

// LedgerService exposes the processed-ID ledger for inspection.
type LedgerService interface {
	// List returns processed IDs in the order they were recorded.
	List(ctx context.Context) ([]string, error)

	// Count returns how many IDs have been recorded.
	Count(ctx context.Context) (int, error)
}
