package aura

import (
	"fmt"

	"github.com/onflow/flow-go/crypto"
)

// Authority is a participant entitled to produce blocks during its turns.
// The ID is derived from the authority's public key, so the two can never
// disagree.
type Authority struct {
	ID        Identifier
	PublicKey crypto.PublicKey
}

// NewAuthority creates an authority identity from its public key.
func NewAuthority(key crypto.PublicKey) *Authority {
	return &Authority{
		ID:        MakeID(key.Encode()),
		PublicKey: key,
	}
}

// String returns a short string representation of the authority.
func (a *Authority) String() string {
	return a.ID.String()[:16]
}

// AuthorityList is an ordered set of authorities. The insertion order is
// significant: it defines the round-robin production order. Entries must be
// unique.
type AuthorityList []*Authority

// ByID returns the authority with the given ID, if it exists in the list.
func (l AuthorityList) ByID(id Identifier) (*Authority, bool) {
	for _, authority := range l {
		if authority.ID == id {
			return authority, true
		}
	}
	return nil, false
}

// Contains returns whether the list contains an authority with the given ID.
func (l AuthorityList) Contains(id Identifier) bool {
	_, ok := l.ByID(id)
	return ok
}

// Validate checks the structural invariants of the authority list: it must
// be non-empty and free of duplicate entries.
func (l AuthorityList) Validate() error {
	if len(l) == 0 {
		return ErrEmptyAuthoritySet
	}
	seen := make(map[Identifier]struct{}, len(l))
	for _, authority := range l {
		if _, ok := seen[authority.ID]; ok {
			return fmt.Errorf("duplicate authority %v in set", authority.ID)
		}
		seen[authority.ID] = struct{}{}
	}
	return nil
}
