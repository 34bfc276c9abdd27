// Package committee determines which authority is entitled to produce the
// block of a given slot.
package committee

import (
	model "github.com/aurachain/aura/model/aura"
)

// AuthorForSlot returns the authority expected to produce the block of the
// given slot: the authorities take turns in list order, round-robin. It is a
// pure function of its inputs and is the single definition of slot ownership
// for both the production and the verification path; if the two paths ever
// disagreed, valid blocks would be rejected or invalid ones produced.
// Returns model.ErrEmptyAuthoritySet if the authority set is empty.
func AuthorForSlot(slot model.Slot, authorities model.AuthorityList) (*model.Authority, error) {
	if len(authorities) == 0 {
		return nil, model.ErrEmptyAuthoritySet
	}
	return authorities[uint64(slot)%uint64(len(authorities))], nil
}
