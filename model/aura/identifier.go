package aura

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/onflow/flow-go/crypto/hash"
)

// Identifier represents a 32-byte unique identifier for an entity.
type Identifier [32]byte

// ZeroID is the lowest value in the 32-byte ID space.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string to an identifier. The input
// must be 64 characters long and contain only valid hex characters.
func HexStringToIdentifier(hexString string) (Identifier, error) {
	var identifier Identifier
	i, err := hex.Decode(identifier[:], []byte(hexString))
	if err != nil {
		return identifier, err
	}
	if i != 32 {
		return identifier, fmt.Errorf("malformed input, expected 32 bytes (64 characters), decoded %d", i)
	}
	return identifier, nil
}

// String returns the hex string representation of the identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// MakeID creates an ID for an entity by hashing its canonical RLP encoding
// with SHA3-256. All entities for which identity matters (headers, payloads)
// derive their ID through this single function, so that any two replicas
// agree on the ID of the same entity.
func MakeID(entity interface{}) Identifier {
	data, err := rlp.EncodeToBytes(entity)
	if err != nil {
		// the entity types passed to MakeID are all RLP-encodable; encoding
		// can only fail on a programming error
		panic(fmt.Sprintf("could not encode entity: %v", err))
	}
	return HashToID(hash.NewSHA3_256().ComputeHash(data))
}

// HashToID converts a raw hash to an Identifier.
func HashToID(hash []byte) Identifier {
	var id Identifier
	copy(id[:], hash)
	return id
}
