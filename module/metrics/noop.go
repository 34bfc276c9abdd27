package metrics

// NoopCollector implements the metrics interfaces with no-ops, for use in
// tests and tools that do not report metrics.
type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (nc *NoopCollector) BlockSealed()          {}
func (nc *NoopCollector) SlotSkipped()          {}
func (nc *NoopCollector) BlockAccepted()        {}
func (nc *NoopCollector) BlockRejected()        {}
func (nc *NoopCollector) VerificationPending()  {}
func (nc *NoopCollector) EquivocationDetected() {}
