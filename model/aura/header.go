package aura

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// Header holds the metadata of a block. The consensus seal is carried in the
// Seal field as opaque bytes; it is excluded from the header fingerprint so
// that the seal's signature can cover the rest of the header.
type Header struct {
	// ChainID is a chain-specific value to prevent replay attacks across chains.
	ChainID string
	// ParentID is the ID of this block's parent.
	ParentID Identifier
	// Height is the height of the block in the chain.
	Height uint64
	// PayloadHash is a hash of the payload of this block.
	PayloadHash Identifier
	// Timestamp is the claimed production time of the block, in unix seconds.
	Timestamp uint64
	// Seal is the encoded consensus seal (slot number and authority
	// signature). It is nil while the block is unsealed.
	Seal []byte
}

// Fingerprint returns the canonical encoding of the header with the seal
// omitted. This is the exact byte string an authority signs when sealing the
// block, and the byte string verifiers check the seal's signature against.
func (h Header) Fingerprint() []byte {
	data, err := rlp.EncodeToBytes(struct {
		ChainID     string
		ParentID    Identifier
		Height      uint64
		PayloadHash Identifier
		Timestamp   uint64
	}{
		ChainID:     h.ChainID,
		ParentID:    h.ParentID,
		Height:      h.Height,
		PayloadHash: h.PayloadHash,
		Timestamp:   h.Timestamp,
	})
	if err != nil {
		panic(fmt.Sprintf("could not encode header: %v", err))
	}
	return data
}

// ID returns the unique ID of the block header. The ID covers only the
// sealed content of the header, so two blocks are distinct if and only if
// they differ in a field the seal's signature commits to.
func (h Header) ID() Identifier {
	return MakeID(struct {
		ChainID     string
		ParentID    Identifier
		Height      uint64
		PayloadHash Identifier
		Timestamp   uint64
	}{
		ChainID:     h.ChainID,
		ParentID:    h.ParentID,
		Height:      h.Height,
		PayloadHash: h.PayloadHash,
		Timestamp:   h.Timestamp,
	})
}
