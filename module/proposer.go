package module

import (
	"context"

	"github.com/aurachain/aura/model/aura"
)

// Proposer constructs unsealed block proposals on top of a given parent.
// Transaction selection is outside the consensus core.
type Proposer interface {
	// ProposeBlock builds an unsealed block on top of the given parent. The
	// implementation must return before the context's deadline expires; it
	// may return a block with an empty payload if no work is ready.
	ProposeBlock(ctx context.Context, parent *aura.Header) (*aura.Block, error)
}
