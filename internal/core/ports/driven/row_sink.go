package driven

import "context"

// RowSink appends rows to a fixed destination range.
type RowSink interface {
	// Append writes rows in order in a single request.
	// Returns the number of rows the destination reports as updated.
	Append(ctx context.Context, rows [][]string) (int, error)
}
