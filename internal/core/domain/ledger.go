package domain

// Ledger is the set of message IDs that have already been emitted.
// It keeps insertion order for persistence and an index for O(1) lookups.
// IDs are only ever added.
type Ledger struct {
	ids   []string
	index map[string]struct{}
}

// NewLedger builds a ledger from previously persisted IDs.
// Duplicate IDs are collapsed, keeping the first occurrence.
func NewLedger(ids ...string) *Ledger {
	l := &Ledger{
		ids:   make([]string, 0, len(ids)),
		index: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		l.Add(id)
	}
	return l
}

// Contains reports whether id is in the ledger. Matching is exact.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Add records id. It returns false if the id was already present.
func (l *Ledger) Add(id string) bool {
	if l.Contains(id) {
		return false
	}
	l.index[id] = struct{}{}
	l.ids = append(l.ids, id)
	return true
}

// Merge adds every id in ids and returns how many were new.
func (l *Ledger) Merge(ids []string) int {
	added := 0
	for _, id := range ids {
		if l.Add(id) {
			added++
		}
	}
	return added
}

// IDs returns a copy of the ids in insertion order.
func (l *Ledger) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Len returns the number of ids.
func (l *Ledger) Len() int {
	return len(l.ids)
}
