// Package verifier implements the validation path of the consensus engine:
// checking that a block was sealed by the authority whose slot it claims,
// and flagging equivocations.
package verifier

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/onflow/flow-go/crypto/hash"
	"github.com/rs/zerolog"

	"github.com/aurachain/aura/consensus/aura"
	"github.com/aurachain/aura/consensus/aura/committee"
	"github.com/aurachain/aura/consensus/aura/equivocation"
	"github.com/aurachain/aura/consensus/aura/notifications"
	"github.com/aurachain/aura/consensus/aura/slots"
	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/module"
)

// acceptedCacheSize is the number of recently accepted block IDs kept to
// short-circuit repeated verification of the same block arriving from
// multiple peers.
const acceptedCacheSize = 1000

// Verifier validates incoming block headers against the slot schedule. It is
// safe for fully parallel use; the only shared mutable state is the
// equivocation ledger, which provides per-key atomicity internally.
type Verifier struct {
	log      zerolog.Logger
	clock    *slots.Clock
	state    module.ChainState
	ledger   *equivocation.Ledger
	notifier notifications.Consumer
	metrics  module.AuraMetrics
	cfg      aura.Config
	accepted *lru.Cache // sealed IDs of blocks already accepted by this verifier
}

// New creates a verifier that resolves authority sets through the given
// chain state and records accepted blocks in the given equivocation ledger.
func New(
	log zerolog.Logger,
	clock *slots.Clock,
	state module.ChainState,
	ledger *equivocation.Ledger,
	notifier notifications.Consumer,
	metrics module.AuraMetrics,
	cfg aura.Config,
) *Verifier {
	accepted, err := lru.New(acceptedCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(fmt.Sprintf("could not create accepted cache: %v", err))
	}
	v := &Verifier{
		log:      log.With().Str("component", "aura_verifier").Logger(),
		clock:    clock,
		state:    state,
		ledger:   ledger,
		notifier: notifier,
		metrics:  metrics,
		cfg:      cfg,
		accepted: accepted,
	}
	return v
}

// VerifyHeader checks that the header carries a well-formed seal signed by
// the authority that owns the claimed slot.
//
// Outcomes:
//   - nil: the block is accepted; an equivocation, if detected, has been
//     reported through the notifications consumer but does not invalidate
//     the block;
//   - model.InvalidBlockError: the block violates the consensus rules and
//     must not be imported or relayed;
//   - model.FutureSlotError: the block claims a slot too far ahead of the
//     local clock; callers should retry once real time has caught up;
//   - all other errors are exceptions (e.g. the chain state being
//     unavailable) and say nothing about the block's validity.
func (v *Verifier) VerifyHeader(header *model.Header) error {
	blockID := header.ID()

	seal, err := model.DecodeSeal(header.Seal)
	if err != nil {
		v.metrics.BlockRejected()
		return model.NewInvalidBlockErrorf(blockID, 0, "could not decode seal: %w", err)
	}

	// a block already accepted by this verifier needs no re-checking when it
	// arrives again from another peer; the cache key covers the seal bytes,
	// so the same header content under a different seal never aliases an
	// accepted block
	cacheKey := sealedID(header)
	if v.accepted.Contains(cacheKey) {
		return nil
	}

	currentSlot := v.clock.CurrentSlot()
	if seal.Slot > currentSlot+v.cfg.AllowedDrift {
		v.metrics.VerificationPending()
		return model.FutureSlotError{Slot: seal.Slot, CurrentSlot: currentSlot}
	}

	// the authority set is resolved fresh for every block, at the block's
	// parent, since it may change from one block to the next
	authorities, err := v.state.AuthoritiesForBlock(header.ParentID)
	if err != nil {
		return fmt.Errorf("could not get authorities for parent %x: %w", header.ParentID, err)
	}
	expected, err := committee.AuthorForSlot(seal.Slot, authorities)
	if err != nil {
		return fmt.Errorf("could not determine author for slot %d: %w", seal.Slot, err)
	}

	valid, err := expected.PublicKey.Verify(seal.Signature, header.Fingerprint(), hash.NewSHA3_256())
	if err != nil {
		return fmt.Errorf("could not verify seal signature: %w", err)
	}
	if !valid {
		v.metrics.BlockRejected()
		return model.NewInvalidBlockErrorf(blockID, seal.Slot,
			"seal not signed by expected author %s: %w", expected, model.ErrInvalidSignature)
	}

	// the block is valid; atomically record it against the (author, slot)
	// pair and flag a duplicate with a different ID as equivocation
	first, prior := v.ledger.RecordOrCheck(expected.ID, seal.Slot, blockID)
	if !first && prior != blockID {
		proof := &model.EquivocationProof{
			Offender:     expected.ID,
			Slot:         seal.Slot,
			FirstBlockID: prior,
			SecondHeader: *header,
		}
		v.log.Warn().
			Hex("offender", expected.ID[:]).
			Uint64("slot", uint64(seal.Slot)).
			Hex("first_block_id", prior[:]).
			Hex("second_block_id", blockID[:]).
			Msg("authority equivocated")
		v.metrics.EquivocationDetected()
		v.notifier.OnEquivocationDetected(proof)
	}

	// keep the ledger bounded; slots settled long ago stop being tracked
	if currentSlot > v.cfg.RetentionSlots {
		v.ledger.PruneUpToSlot(currentSlot - v.cfg.RetentionSlots)
	}

	v.accepted.Add(cacheKey, struct{}{})
	v.metrics.BlockAccepted()

	v.log.Debug().
		Hex("block_id", blockID[:]).
		Uint64("slot", uint64(seal.Slot)).
		Uint64("height", header.Height).
		Msg("block accepted")

	return nil
}

// sealedID is the cache key for accepted blocks. The block ID deliberately
// excludes the seal, so it cannot serve as the key: two headers with the
// same content but different seal bytes must verify independently. The key
// therefore hashes the signed fingerprint together with the seal.
func sealedID(header *model.Header) model.Identifier {
	data := append(header.Fingerprint(), header.Seal...)
	return model.HashToID(hash.NewSHA3_256().ComputeHash(data))
}
