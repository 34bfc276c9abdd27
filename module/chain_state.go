package module

import (
	"time"

	"github.com/aurachain/aura/model/aura"
)

// ChainState provides read-only access to the consensus-relevant chain state
// maintained by the external chain client. All methods return point-in-time
// snapshots: two calls with the same block reference must return the same
// result, and callers must never mutate the returned values.
type ChainState interface {
	// Head returns the header of the current best chain head.
	Head() (*aura.Header, error)

	// AuthoritiesForBlock returns the authority set that is in effect for
	// building on top of the given block. The set may differ between blocks,
	// so it must be resolved fresh for each production or verification call.
	AuthoritiesForBlock(blockID aura.Identifier) (aura.AuthorityList, error)

	// SlotDuration returns the duration of a production slot for the chain.
	SlotDuration() time.Duration

	// GenesisTime returns the start time of slot 0.
	GenesisTime() time.Time
}
