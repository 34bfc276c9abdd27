// Package equivocation tracks which block each authority has produced for
// each slot, so that verification can flag double-production.
package equivocation

import (
	"sync"

	model "github.com/aurachain/aura/model/aura"
)

// Ledger records, per (authority, slot) pair, the single block ID first
// accepted for that pair. It is the only mutable state shared between
// parallel verification calls; the check-then-record sequence for a key is
// atomic, so two concurrent equivocating blocks can never both be recorded
// as first.
//
// Entries older than a retention horizon can be pruned with PruneUpToSlot.
// Pruning only stops tracking far-enough-past slots against new duplicates;
// detections already delivered are unaffected.
type Ledger struct {
	mu sync.Mutex
	// records are keyed by slot first so that pruning by slot age is a
	// cheap map cleanup rather than a full scan
	records map[model.Slot]map[model.Identifier]model.Identifier
	// lowestRetained is the lowest slot still tracked; records below it
	// have been pruned and are no longer checked for duplicates
	lowestRetained model.Slot
}

// NewLedger creates an empty equivocation ledger.
func NewLedger() *Ledger {
	l := &Ledger{
		records: make(map[model.Slot]map[model.Identifier]model.Identifier),
	}
	return l
}

// RecordOrCheck atomically records the block ID for the (authority, slot)
// pair if no block is recorded yet, or returns the previously recorded block
// ID otherwise.
//
// Return values:
//   - (true, ZeroID) if this is the first block observed for the pair;
//   - (false, prior) if a block was already recorded; prior equals blockID
//     when the same block is observed again, and differs from blockID when
//     the authority equivocated.
//
// Pairs below the pruning horizon are not tracked; they report as first
// without being recorded.
func (l *Ledger) RecordOrCheck(authorityID model.Identifier, slot model.Slot, blockID model.Identifier) (bool, model.Identifier) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if slot < l.lowestRetained {
		return true, model.ZeroID
	}

	bySlot, ok := l.records[slot]
	if !ok {
		bySlot = make(map[model.Identifier]model.Identifier)
		l.records[slot] = bySlot
	}
	prior, ok := bySlot[authorityID]
	if ok {
		return false, prior
	}
	bySlot[authorityID] = blockID
	return true, model.ZeroID
}

// PruneUpToSlot drops all records for slots strictly below the given slot
// and stops tracking those slots against new duplicates. The pruning
// threshold never moves backwards.
func (l *Ledger) PruneUpToSlot(slot model.Slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if slot <= l.lowestRetained {
		return
	}
	for recorded := range l.records {
		if recorded < slot {
			delete(l.records, recorded)
		}
	}
	l.lowestRetained = slot
}

// Size returns the number of tracked (authority, slot) pairs.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	size := 0
	for _, bySlot := range l.records {
		size += len(bySlot)
	}
	return size
}
