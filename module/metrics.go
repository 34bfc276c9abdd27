package module

// AuraMetrics exposes the consensus engine's instrumentation points.
type AuraMetrics interface {
	// BlockSealed reports that the local node sealed and submitted a block.
	BlockSealed()

	// SlotSkipped reports that the local node owned a slot but did not
	// produce a block for it.
	SlotSkipped()

	// BlockAccepted reports a verification call that accepted the block.
	BlockAccepted()

	// BlockRejected reports a verification call that rejected the block.
	BlockRejected()

	// VerificationPending reports a verification call that could not be
	// settled yet because the block claims a future slot.
	VerificationPending()

	// EquivocationDetected reports a detected double-production.
	EquivocationDetected()
}
