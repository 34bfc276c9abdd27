// Package unittest provides fixtures and in-memory collaborator doubles for
// testing the consensus engine.
package unittest

import (
	crand "crypto/rand"
	"fmt"
	"math/rand"
	"time"

	"github.com/onflow/flow-go/crypto"

	model "github.com/aurachain/aura/model/aura"
)

// DefaultChainID is the chain ID used by fixtures.
const DefaultChainID = "aura-test"

// IdentifierFixture returns a random identifier.
func IdentifierFixture() model.Identifier {
	var id model.Identifier
	_, err := crand.Read(id[:])
	if err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return id
}

// PrivateKeyFixture returns a random ECDSA P-256 private key.
func PrivateKeyFixture() crypto.PrivateKey {
	seed := make([]byte, crypto.KeyGenSeedMinLen)
	_, err := crand.Read(seed)
	if err != nil {
		panic(fmt.Sprintf("could not read random seed: %v", err))
	}
	sk, err := crypto.GeneratePrivateKey(crypto.ECDSAP256, seed)
	if err != nil {
		panic(fmt.Sprintf("could not generate private key: %v", err))
	}
	return sk
}

// AuthorityFixture returns an authority identity together with its private
// key.
func AuthorityFixture() (*model.Authority, crypto.PrivateKey) {
	sk := PrivateKeyFixture()
	return model.NewAuthority(sk.PublicKey()), sk
}

// AuthorityListFixture returns an ordered set of n authorities and their
// private keys, indexed in the same order.
func AuthorityListFixture(n int) (model.AuthorityList, []crypto.PrivateKey) {
	authorities := make(model.AuthorityList, 0, n)
	keys := make([]crypto.PrivateKey, 0, n)
	for i := 0; i < n; i++ {
		authority, sk := AuthorityFixture()
		authorities = append(authorities, authority)
		keys = append(keys, sk)
	}
	return authorities, keys
}

// HeaderFixture returns an unsealed header with random content.
func HeaderFixture(opts ...func(*model.Header)) *model.Header {
	header := &model.Header{
		ChainID:     DefaultChainID,
		ParentID:    IdentifierFixture(),
		Height:      uint64(rand.Uint32()),
		PayloadHash: IdentifierFixture(),
		Timestamp:   uint64(time.Now().Unix()),
	}
	for _, opt := range opts {
		opt(header)
	}
	return header
}

// WithParent sets the parent reference and height of a header fixture.
func WithParent(parent *model.Header) func(*model.Header) {
	return func(header *model.Header) {
		header.ParentID = parent.ID()
		header.Height = parent.Height + 1
	}
}

// WithHeight sets the height of a header fixture.
func WithHeight(height uint64) func(*model.Header) {
	return func(header *model.Header) {
		header.Height = height
	}
}

// GenesisHeaderFixture returns a header usable as a chain root.
func GenesisHeaderFixture() *model.Header {
	return &model.Header{
		ChainID:     DefaultChainID,
		ParentID:    model.ZeroID,
		Height:      0,
		PayloadHash: model.EmptyPayload().Hash(),
		Timestamp:   uint64(time.Now().Unix()),
	}
}

// BlockFixture returns a block with a random payload on top of the given
// parent.
func BlockFixture(parent *model.Header) *model.Block {
	block := &model.Block{
		Header: HeaderFixture(WithParent(parent)),
	}
	block.SetPayload(PayloadFixture())
	return block
}

// PayloadFixture returns a payload with a few random transactions.
func PayloadFixture() model.Payload {
	txs := make([][]byte, 3)
	for i := range txs {
		tx := make([]byte, 32)
		_, _ = crand.Read(tx)
		txs[i] = tx
	}
	return model.Payload{Transactions: txs}
}
