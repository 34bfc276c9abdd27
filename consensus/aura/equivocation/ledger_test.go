package equivocation_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/aurachain/aura/consensus/aura/equivocation"
	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/utils/unittest"
)

func TestRecordOrCheckFirst(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()
	blockID := unittest.IdentifierFixture()

	first, prior := ledger.RecordOrCheck(authority, 5, blockID)
	assert.True(t, first)
	assert.Equal(t, model.ZeroID, prior)
	assert.Equal(t, 1, ledger.Size())
}

// Re-observing the same block for the same pair returns the same ID, which
// callers treat as a benign duplicate rather than an equivocation.
func TestRecordOrCheckSameBlock(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()
	blockID := unittest.IdentifierFixture()

	ledger.RecordOrCheck(authority, 5, blockID)
	first, prior := ledger.RecordOrCheck(authority, 5, blockID)
	assert.False(t, first)
	assert.Equal(t, blockID, prior)
	assert.Equal(t, 1, ledger.Size())
}

func TestRecordOrCheckEquivocation(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()
	firstBlock := unittest.IdentifierFixture()
	secondBlock := unittest.IdentifierFixture()

	ledger.RecordOrCheck(authority, 5, firstBlock)
	first, prior := ledger.RecordOrCheck(authority, 5, secondBlock)
	assert.False(t, first)
	assert.Equal(t, firstBlock, prior)

	// the first block stays recorded; the equivocating block never replaces it
	first, prior = ledger.RecordOrCheck(authority, 5, unittest.IdentifierFixture())
	assert.False(t, first)
	assert.Equal(t, firstBlock, prior)
}

// Distinct pairs do not interfere: the same authority in different slots and
// different authorities in the same slot are all tracked independently.
func TestRecordOrCheckIndependentPairs(t *testing.T) {
	ledger := equivocation.NewLedger()
	alice := unittest.IdentifierFixture()
	bob := unittest.IdentifierFixture()

	first, _ := ledger.RecordOrCheck(alice, 5, unittest.IdentifierFixture())
	assert.True(t, first)
	first, _ = ledger.RecordOrCheck(alice, 6, unittest.IdentifierFixture())
	assert.True(t, first)
	first, _ = ledger.RecordOrCheck(bob, 5, unittest.IdentifierFixture())
	assert.True(t, first)
	assert.Equal(t, 3, ledger.Size())
}

// Under concurrent verification of conflicting blocks, exactly one caller
// observes the pair as first.
func TestRecordOrCheckConcurrent(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()

	firsts := atomic.NewInt64(0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, _ := ledger.RecordOrCheck(authority, 9, unittest.IdentifierFixture())
			if first {
				firsts.Inc()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), firsts.Load())
	assert.Equal(t, 1, ledger.Size())
}

func TestPruneUpToSlot(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()
	for slot := model.Slot(0); slot < 10; slot++ {
		ledger.RecordOrCheck(authority, slot, unittest.IdentifierFixture())
	}
	require.Equal(t, 10, ledger.Size())

	ledger.PruneUpToSlot(5)
	assert.Equal(t, 5, ledger.Size())

	// pruned slots are no longer tracked; a late duplicate reports as first
	// but is not recorded
	first, _ := ledger.RecordOrCheck(authority, 3, unittest.IdentifierFixture())
	assert.True(t, first)
	assert.Equal(t, 5, ledger.Size())

	// retained slots keep their records
	first, _ = ledger.RecordOrCheck(authority, 7, unittest.IdentifierFixture())
	assert.False(t, first)
}

func TestPruneNeverMovesBackwards(t *testing.T) {
	ledger := equivocation.NewLedger()
	authority := unittest.IdentifierFixture()

	ledger.PruneUpToSlot(10)
	ledger.PruneUpToSlot(5)

	// slot 7 is still below the horizon set by the first prune
	first, _ := ledger.RecordOrCheck(authority, 7, unittest.IdentifierFixture())
	assert.True(t, first)
	assert.Equal(t, 0, ledger.Size())

	first, _ = ledger.RecordOrCheck(authority, 10, unittest.IdentifierFixture())
	assert.True(t, first)
	assert.Equal(t, 1, ledger.Size())
}
