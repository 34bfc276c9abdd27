// Package notifications defines the consumer interface for consensus events
// and provides basic implementations.
package notifications

import (
	model "github.com/aurachain/aura/model/aura"
)

// Consumer consumes notifications emitted by the consensus engine.
// Implementations must be non-blocking and concurrency safe, as notifications
// are emitted synchronously from the production loop and from parallel
// verification calls.
type Consumer interface {
	// OnBlockSealed is emitted when the local node has sealed a block and
	// submitted it for import.
	OnBlockSealed(block *model.Block)

	// OnSlotSkipped is emitted when the local node owned a slot but skipped
	// it, e.g. because proposal construction failed or the signing key was
	// unavailable.
	OnSlotSkipped(slot model.Slot, reason string)

	// OnEquivocationDetected is emitted when verification observes a second
	// distinct block sealed by the same authority for the same slot. The
	// offending block is still chain-valid; the proof is for external
	// penalty handling.
	OnEquivocationDetected(proof *model.EquivocationProof)
}
