package domain

// RunState is the terminal state of an ingestion run.
type RunState int

const (
	// RunIdle means there was nothing new to append.
	RunIdle RunState = iota
	// RunPersisted means rows were appended, messages marked read and the ledger saved.
	RunPersisted
	// RunAborted means credentials could not be established. Nothing was touched.
	RunAborted
	// RunPreviewed means rows were decoded but, by request, not written anywhere.
	RunPreviewed
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunPersisted:
		return "persisted"
	case RunAborted:
		return "aborted"
	case RunPreviewed:
		return "previewed"
	default:
		return "unknown"
	}
}

// RunReport summarises one ingestion run.
type RunReport struct {
	// RunID identifies the run in logs.
	RunID string
	// State is the terminal state reached.
	State RunState
	// Listed is how many unread messages the source returned.
	Listed int
	// Skipped is how many listed messages were already in the ledger.
	Skipped int
	// Appended is how many rows were written.
	Appended int
	// Rows holds the decoded rows of a preview run.
	Rows [][]string
}
