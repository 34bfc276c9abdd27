package module

import (
	"errors"

	"github.com/aurachain/aura/model/aura"
)

var (
	// ErrAlreadyImported is returned when the submitted block has already
	// been imported, e.g. because it arrived over the network first.
	ErrAlreadyImported = errors.New("block already imported")

	// ErrUnknownParent is returned when the submitted block does not extend
	// a known block, e.g. because a competing block won the import race and
	// the parent went stale.
	ErrUnknownParent = errors.New("block parent unknown or stale")
)

// BlockImporter accepts sealed blocks into the chain database and best-chain
// bookkeeping of the external chain client.
type BlockImporter interface {
	// ImportBlock submits a sealed block for import. It returns
	// ErrAlreadyImported or ErrUnknownParent for the corresponding benign
	// races; any other error is an exception.
	ImportBlock(block *aura.Block) error
}
