package notifications

import (
	model "github.com/aurachain/aura/model/aura"
)

// NoopConsumer is a no-op implementation of Consumer.
type NoopConsumer struct{}

var _ Consumer = (*NoopConsumer)(nil)

func NewNoopConsumer() *NoopConsumer {
	return &NoopConsumer{}
}

func (*NoopConsumer) OnBlockSealed(*model.Block)                      {}
func (*NoopConsumer) OnSlotSkipped(model.Slot, string)                {}
func (*NoopConsumer) OnEquivocationDetected(*model.EquivocationProof) {}
