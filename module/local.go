package module

import (
	"errors"

	"github.com/onflow/flow-go/crypto"
	"github.com/onflow/flow-go/crypto/hash"

	"github.com/aurachain/aura/model/aura"
)

// ErrKeyUnavailable is returned by a key store that cannot currently produce
// a signature for the requested identity, e.g. because the key is not loaded
// or is locked. It is a transient production error, never a fatal one.
var ErrKeyUnavailable = errors.New("signing key unavailable")

// Local encapsulates the local node's authority identity and provides access
// to its private key through the key storage subsystem.
type Local interface {
	// NodeID returns the authority ID of the local node.
	NodeID() aura.Identifier

	// Sign signs the given message with the local node's private key, using
	// the given hasher. It returns ErrKeyUnavailable (wrapped) if the key
	// cannot be used for signing at this time.
	Sign(msg []byte, hasher hash.Hasher) (crypto.Signature, error)
}
