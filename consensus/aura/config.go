// Package aura implements the authority-round consensus engine: a fixed,
// ordered set of authorities takes turns producing blocks in deterministic,
// fixed-duration time slots. The engine decides whose turn the current slot
// is, produces and seals blocks when the local node owns the slot, and
// verifies that incoming blocks were produced by the authority whose turn it
// was, flagging equivocations as a side channel.
package aura

import (
	model "github.com/aurachain/aura/model/aura"
)

// Config holds the tuning parameters of the consensus engine. The slot
// duration and authority set are chain state, not configuration; they are
// resolved at runtime through module.ChainState.
type Config struct {
	// AllowedDrift is the number of slots a block may claim ahead of the
	// local clock before verification is deferred. It absorbs clock skew
	// between nodes.
	AllowedDrift model.Slot

	// RetentionSlots is the equivocation ledger's retention horizon: entries
	// older than this many slots behind the current slot are pruned.
	RetentionSlots model.Slot
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		AllowedDrift:   1,
		RetentionSlots: 2400,
	}
}
