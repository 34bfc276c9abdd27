// Package local implements the node's local authority identity, backed by
// the private key obtained from the key storage subsystem.
package local

import (
	"fmt"

	"github.com/onflow/flow-go/crypto"
	"github.com/onflow/flow-go/crypto/hash"

	"github.com/aurachain/aura/model/aura"
)

type Local struct {
	me *aura.Authority   // the authority identity of the local node
	sk crypto.PrivateKey // the local node's private signing key
}

// New creates a local identity from the authority identity and the matching
// private key. It fails if the private key does not correspond to the
// authority's public key, as that would let the node sign seals that no
// verifier accepts.
func New(me *aura.Authority, sk crypto.PrivateKey) (*Local, error) {
	if !sk.PublicKey().Equals(me.PublicKey) {
		return nil, fmt.Errorf("cannot initialize with mismatching public key (authority: %s)", me)
	}
	l := &Local{
		me: me,
		sk: sk,
	}
	return l, nil
}

func (l *Local) NodeID() aura.Identifier {
	return l.me.ID
}

func (l *Local) Sign(msg []byte, hasher hash.Hasher) (crypto.Signature, error) {
	return l.sk.Sign(msg, hasher)
}
