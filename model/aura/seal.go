package aura

import (
	"encoding/binary"
	"fmt"

	"github.com/onflow/flow-go/crypto"
)

// Slot is the index of a fixed-duration production window. Slot numbers
// strictly increase with real time and totally order authorship turns.
type Slot uint64

// sealSlotLen is the fixed width of the slot number in an encoded seal.
const sealSlotLen = 8

// Seal is the consensus digest attached to a block header. It records the
// slot the block was produced in and carries the producing authority's
// signature over the header fingerprint.
type Seal struct {
	Slot      Slot
	Signature crypto.Signature
}

// Encode serializes the seal to its wire format: the slot number as a
// fixed-width big-endian integer, followed by the raw signature bytes.
func (s *Seal) Encode() []byte {
	enc := make([]byte, sealSlotLen+len(s.Signature))
	binary.BigEndian.PutUint64(enc[:sealSlotLen], uint64(s.Slot))
	copy(enc[sealSlotLen:], s.Signature)
	return enc
}

// DecodeSeal parses a seal from its wire format. It returns ErrInvalidFormat
// (wrapped) if the input is too short to contain a slot number and a
// non-empty signature.
func DecodeSeal(data []byte) (*Seal, error) {
	if len(data) <= sealSlotLen {
		return nil, fmt.Errorf("seal is %d bytes, need slot number and signature: %w", len(data), ErrInvalidFormat)
	}
	sig := make(crypto.Signature, len(data)-sealSlotLen)
	copy(sig, data[sealSlotLen:])
	return &Seal{
		Slot:      Slot(binary.BigEndian.Uint64(data[:sealSlotLen])),
		Signature: sig,
	}, nil
}
