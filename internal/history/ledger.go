// Package history keeps the bounded, in-memory record of completed single analyses.
// Entries live only as long as the process; nothing is persisted.
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Capacity is the number of most recent analyses the ledger retains.
const Capacity = 5

// Ledger is an immutable, most-recent-first list of at most Capacity entries.
type Ledger struct {
	entries []types.HistoryEntry
}

// NewEntry builds a HistoryEntry stamped with now and a fresh time-ordered id.
func NewEntry(resumeName, jdName string, score float64, sessionID string, now time.Time) types.HistoryEntry {
	return types.HistoryEntry{
		ID:                 newID(),
		ResumeName:         resumeName,
		JobDescriptionName: jdName,
		Score:              score,
		Date:               now.Format(types.DateLayout),
		CreatedAt:          now,
		SessionID:          sessionID,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Record prepends entry and evicts the oldest entries beyond Capacity.
func (l Ledger) Record(entry types.HistoryEntry) Ledger {
	n := min(len(l.entries)+1, Capacity)
	next := make([]types.HistoryEntry, 0, n)
	next = append(next, entry)
	next = append(next, l.entries[:n-1]...)
	return Ledger{entries: next}
}

// Entries returns a copy of the entries, most recent first.
func (l Ledger) Entries() []types.HistoryEntry {
	out := make([]types.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l Ledger) Len() int {
	return len(l.entries)
}

// Find looks up an entry by id.
func (l Ledger) Find(id string) (types.HistoryEntry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return types.HistoryEntry{}, false
}
