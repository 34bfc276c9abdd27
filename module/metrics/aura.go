package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespaceConsensus = "consensus"
	subsystemAura      = "aura"
)

// AuraCollector collects the consensus engine's production and verification
// metrics.
type AuraCollector struct {
	sealedBlocks          prometheus.Counter
	skippedSlots          prometheus.Counter
	acceptedBlocks        prometheus.Counter
	rejectedBlocks        prometheus.Counter
	pendingVerifications  prometheus.Counter
	detectedEquivocations prometheus.Counter
}

// NewAuraCollector creates a new collector and registers its metrics with
// the given registerer.
func NewAuraCollector(registerer prometheus.Registerer) *AuraCollector {
	cc := &AuraCollector{
		sealedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "sealed_blocks_total",
			Help:      "number of blocks sealed and submitted by this node",
		}),
		skippedSlots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "skipped_slots_total",
			Help:      "number of owned slots skipped without producing a block",
		}),
		acceptedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "accepted_blocks_total",
			Help:      "number of verification calls that accepted the block",
		}),
		rejectedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "rejected_blocks_total",
			Help:      "number of verification calls that rejected the block",
		}),
		pendingVerifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "pending_verifications_total",
			Help:      "number of verification calls deferred for blocks claiming a future slot",
		}),
		detectedEquivocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceConsensus,
			Subsystem: subsystemAura,
			Name:      "detected_equivocations_total",
			Help:      "number of detected double-productions",
		}),
	}
	registerer.MustRegister(
		cc.sealedBlocks,
		cc.skippedSlots,
		cc.acceptedBlocks,
		cc.rejectedBlocks,
		cc.pendingVerifications,
		cc.detectedEquivocations,
	)
	return cc
}

func (cc *AuraCollector) BlockSealed() {
	cc.sealedBlocks.Inc()
}

func (cc *AuraCollector) SlotSkipped() {
	cc.skippedSlots.Inc()
}

func (cc *AuraCollector) BlockAccepted() {
	cc.acceptedBlocks.Inc()
}

func (cc *AuraCollector) BlockRejected() {
	cc.rejectedBlocks.Inc()
}

func (cc *AuraCollector) VerificationPending() {
	cc.pendingVerifications.Inc()
}

func (cc *AuraCollector) EquivocationDetected() {
	cc.detectedEquivocations.Inc()
}
