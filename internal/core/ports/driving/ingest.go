package driving

import (
	"context"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// Ingestor runs one poll of the inbox into the spreadsheet.
type Ingestor interface {
	// Run performs a single ingestion pass.
	// An authentication abort is reported through the report's state with a
	// nil error; every other failure is returned.
	Run(ctx context.Context, opts RunOptions) (*domain.RunReport, error)
}

// RunOptions tunes a single run.
type RunOptions struct {
	// DryRun decodes new messages but skips append, mark-read and ledger save.
	DryRun bool
}
