package aura

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// EquivocationProof documents that an authority produced more than one
// distinct block for the same slot. Equivocation does not invalidate the
// blocks themselves; the proof is handed to an external reporting channel
// for penalty handling.
type EquivocationProof struct {
	// Offender is the ID of the equivocating authority.
	Offender Identifier
	// Slot is the slot at which the equivocation happened.
	Slot Slot
	// FirstBlockID is the ID of the block first accepted for the
	// (offender, slot) pair.
	FirstBlockID Identifier
	// SecondHeader is the conflicting header that triggered detection.
	SecondHeader Header
}

// Encode serializes the proof for the external reporting channel.
func (p *EquivocationProof) Encode() ([]byte, error) {
	data, err := cbor.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not encode equivocation proof: %w", err)
	}
	return data, nil
}

// DecodeEquivocationProof parses an encoded equivocation proof.
func DecodeEquivocationProof(data []byte) (*EquivocationProof, error) {
	var proof EquivocationProof
	err := cbor.Unmarshal(data, &proof)
	if err != nil {
		return nil, fmt.Errorf("could not decode equivocation proof: %w", err)
	}
	return &proof, nil
}
