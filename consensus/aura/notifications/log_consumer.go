package notifications

import (
	"github.com/rs/zerolog"

	model "github.com/aurachain/aura/model/aura"
)

// LogConsumer logs all consensus notifications.
type LogConsumer struct {
	log zerolog.Logger
}

var _ Consumer = (*LogConsumer)(nil)

func NewLogConsumer(log zerolog.Logger) *LogConsumer {
	lc := &LogConsumer{
		log: log.With().Str("component", "aura_notifications").Logger(),
	}
	return lc
}

func (lc *LogConsumer) OnBlockSealed(block *model.Block) {
	lc.log.Info().
		Hex("block_id", logID(block.ID())).
		Uint64("height", block.Header.Height).
		Msg("block sealed")
}

func (lc *LogConsumer) OnSlotSkipped(slot model.Slot, reason string) {
	lc.log.Warn().
		Uint64("slot", uint64(slot)).
		Str("reason", reason).
		Msg("owned slot skipped")
}

func (lc *LogConsumer) OnEquivocationDetected(proof *model.EquivocationProof) {
	lc.log.Warn().
		Hex("offender", logID(proof.Offender)).
		Uint64("slot", uint64(proof.Slot)).
		Hex("first_block_id", logID(proof.FirstBlockID)).
		Hex("second_block_id", logID(proof.SecondHeader.ID())).
		Msg("equivocation detected")
}

func logID(id model.Identifier) []byte {
	return id[:]
}
