package aura

// Payload is the content of a block. Transaction selection and execution are
// outside the consensus core, so transactions are carried as opaque blobs.
type Payload struct {
	Transactions [][]byte
}

// Hash returns the hash of the payload.
func (p Payload) Hash() Identifier {
	return MakeID(p)
}

// EmptyPayload returns an empty block payload.
func EmptyPayload() Payload {
	return Payload{}
}

// Block is a block in the chain: a header plus its payload.
type Block struct {
	Header  *Header
	Payload *Payload
}

// SetPayload sets the payload and updates the payload hash in the header.
func (b *Block) SetPayload(payload Payload) {
	b.Payload = &payload
	b.Header.PayloadHash = payload.Hash()
}

// ID returns the ID of the block, which is the ID of its header.
func (b Block) ID() Identifier {
	return b.Header.ID()
}
