// Package worker implements the production path of the consensus engine: a
// single timer-driven loop that wakes at every slot boundary, checks whether
// the local node owns the slot, and if so proposes, seals and submits a
// block before the slot ends.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onflow/flow-go/crypto/hash"
	"github.com/rs/zerolog"

	"github.com/aurachain/aura/consensus/aura/committee"
	"github.com/aurachain/aura/consensus/aura/notifications"
	"github.com/aurachain/aura/consensus/aura/slots"
	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/module"
	"github.com/aurachain/aura/module/component"
	"github.com/aurachain/aura/module/irrecoverable"
)

// Worker is the slot production loop. It suspends between slot boundaries
// and performs no work for slots owned by other authorities. A failure to
// produce for a single slot is never fatal; the slot is skipped and the loop
// continues at the next boundary.
type Worker struct {
	component.Component

	log      zerolog.Logger
	me       module.Local
	clock    *slots.Clock
	state    module.ChainState
	proposer module.Proposer
	importer module.BlockImporter
	notifier notifications.Consumer
	metrics  module.AuraMetrics
}

var _ component.Component = (*Worker)(nil)

// New creates a slot worker for the local node.
func New(
	log zerolog.Logger,
	me module.Local,
	clock *slots.Clock,
	state module.ChainState,
	proposer module.Proposer,
	importer module.BlockImporter,
	notifier notifications.Consumer,
	metrics module.AuraMetrics,
) *Worker {
	w := &Worker{
		log:      log.With().Str("component", "aura_worker").Logger(),
		me:       me,
		clock:    clock,
		state:    state,
		proposer: proposer,
		importer: importer,
		notifier: notifier,
		metrics:  metrics,
	}
	w.Component = component.NewComponentManagerBuilder().
		AddWorker(w.processSlots).
		Build()
	return w
}

// processSlots runs the slot loop until the context is cancelled. Before
// signalling ready, it validates that the chain state yields a usable
// authority set; a chain this node could never produce for is a
// configuration error and fatal at start-up.
func (w *Worker) processSlots(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	err := w.checkConfiguration()
	if err != nil {
		ctx.Throw(err)
	}
	ready()

	for {
		// the next boundary is recomputed from the wall clock on every
		// iteration, so a slow slot simply skips ahead rather than drifting
		slot := w.clock.CurrentSlot() + 1
		err := w.clock.WaitForSlot(ctx, slot)
		if err != nil {
			// context cancelled; stop requesting further wakes
			return
		}
		w.processSlot(ctx, slot)
	}
}

// checkConfiguration verifies that the current head yields a valid authority
// set. Errors returned are fatal.
func (w *Worker) checkConfiguration() error {
	head, err := w.state.Head()
	if err != nil {
		return fmt.Errorf("could not get chain head: %w", err)
	}
	authorities, err := w.state.AuthoritiesForBlock(head.ID())
	if err != nil {
		return fmt.Errorf("could not get authorities at head: %w", err)
	}
	err = authorities.Validate()
	if err != nil {
		return model.NewConfigurationErrorf("invalid authority set at head: %w", err)
	}
	return nil
}

// processSlot handles a single slot boundary. All failures are local to the
// slot: they are logged, reported, and the slot is given up without retry,
// since a missed slot is not recoverable after the fact.
func (w *Worker) processSlot(ctx context.Context, slot model.Slot) {
	log := w.log.With().Uint64("slot", uint64(slot)).Logger()

	head, err := w.state.Head()
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not get chain head: %v", err))
		return
	}
	authorities, err := w.state.AuthoritiesForBlock(head.ID())
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not get authorities: %v", err))
		return
	}
	expected, err := committee.AuthorForSlot(slot, authorities)
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not determine slot author: %v", err))
		return
	}
	if expected.ID != w.me.NodeID() {
		log.Debug().
			Hex("author", expected.ID[:]).
			Msg("slot owned by other authority")
		return
	}

	log.Debug().Uint64("parent_height", head.Height).Msg("processing owned slot")

	// the proposal must not overrun into the next slot's time window, so the
	// proposer gets a deadline no later than the slot's end
	proposalCtx, cancel := context.WithDeadline(ctx, w.clock.SlotEndTime(slot))
	defer cancel()

	block, err := w.proposer.ProposeBlock(proposalCtx, head)
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not build proposal: %v", err))
		return
	}

	// a signing failure (key not present or locked) skips the slot; it is
	// not fatal to the process
	sig, err := w.me.Sign(block.Header.Fingerprint(), hash.NewSHA3_256())
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not sign seal: %v", err))
		return
	}
	seal := model.Seal{Slot: slot, Signature: sig}
	block.Header.Seal = seal.Encode()

	err = w.importer.ImportBlock(block)
	if errors.Is(err, module.ErrAlreadyImported) || errors.Is(err, module.ErrUnknownParent) {
		// lost the import race to a competing block; discard without retry
		w.skipSlot(slot, fmt.Sprintf("import race lost: %v", err))
		return
	}
	if err != nil {
		w.skipSlot(slot, fmt.Sprintf("could not import block: %v", err))
		return
	}

	w.metrics.BlockSealed()
	w.notifier.OnBlockSealed(block)

	blockID := block.ID()
	log.Info().
		Hex("block_id", blockID[:]).
		Uint64("height", block.Header.Height).
		Time("sealed_at", time.Now()).
		Msg("block sealed and submitted")
}

func (w *Worker) skipSlot(slot model.Slot, reason string) {
	w.log.Warn().
		Uint64("slot", uint64(slot)).
		Str("reason", reason).
		Msg("skipping slot")
	w.metrics.SlotSkipped()
	w.notifier.OnSlotSkipped(slot, reason)
}
