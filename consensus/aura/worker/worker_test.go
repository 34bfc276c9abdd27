package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/onflow/flow-go/crypto"
	"github.com/onflow/flow-go/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurachain/aura/consensus/aura/slots"
	"github.com/aurachain/aura/consensus/aura/worker"
	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/module"
	"github.com/aurachain/aura/module/irrecoverable"
	"github.com/aurachain/aura/module/local"
	"github.com/aurachain/aura/module/metrics"
	"github.com/aurachain/aura/module/util"
	"github.com/aurachain/aura/utils/unittest"
)

// slot durations short enough to drive several slots per test without making
// the suite slow
const testSlotDuration = 50 * time.Millisecond

// eventConsumer records sealed blocks and skipped slots.
type eventConsumer struct {
	mu      sync.Mutex
	sealed  []*model.Block
	skipped []model.Slot
}

func (c *eventConsumer) OnBlockSealed(block *model.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = append(c.sealed, block)
}

func (c *eventConsumer) OnSlotSkipped(slot model.Slot, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped = append(c.skipped, slot)
}

func (c *eventConsumer) OnEquivocationDetected(*model.EquivocationProof) {}

func (c *eventConsumer) SealedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sealed)
}

func (c *eventConsumer) SkippedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.skipped)
}

func (c *eventConsumer) Sealed() []*model.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.Block(nil), c.sealed...)
}

// failingSigner is a local identity whose key is unavailable.
type failingSigner struct {
	id model.Identifier
}

func (f *failingSigner) NodeID() model.Identifier { return f.id }
func (f *failingSigner) Sign([]byte, hash.Hasher) (crypto.Signature, error) {
	return nil, module.ErrKeyUnavailable
}

type workerFixture struct {
	authorities model.AuthorityList
	keys        []crypto.PrivateKey
	chain       *unittest.FakeChain
	clock       *slots.Clock
	consumer    *eventConsumer
	worker      *worker.Worker
	errChan     <-chan error
	cancel      context.CancelFunc
}

// newWorkerFixture builds a worker for authority at the given index of a
// fresh n-authority chain, started against a signaler context.
func newWorkerFixture(t *testing.T, n int, index int) *workerFixture {
	genesisTime := time.Now()
	genesis := unittest.GenesisHeaderFixture()
	authorities, keys := unittest.AuthorityListFixture(n)
	chain := unittest.NewFakeChain(genesis, authorities, testSlotDuration, genesisTime)

	clock, err := slots.NewClock(genesisTime, testSlotDuration)
	require.NoError(t, err)

	me, err := local.New(authorities[index], keys[index])
	require.NoError(t, err)

	consumer := &eventConsumer{}
	w := worker.New(
		unittest.Logger(),
		me,
		clock,
		chain,
		&unittest.FakeProposer{},
		chain,
		consumer,
		metrics.NewNoopCollector(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	w.Start(signalerCtx)

	return &workerFixture{
		authorities: authorities,
		keys:        keys,
		chain:       chain,
		clock:       clock,
		consumer:    consumer,
		worker:      w,
		errChan:     errChan,
		cancel:      cancel,
	}
}

// stop cancels the worker and waits for a clean shutdown.
func (f *workerFixture) stop(t *testing.T) {
	f.cancel()
	err := util.WaitError(f.errChan, f.worker.Done())
	require.NoError(t, err)
}

// A single authority owns every slot and should extend the chain once per
// slot boundary.
func TestWorkerProducesOwnedSlots(t *testing.T) {
	f := newWorkerFixture(t, 1, 0)
	require.NoError(t, util.WaitClosed(context.Background(), f.worker.Ready()))

	require.Eventually(t, func() bool {
		return f.chain.Height() >= 3
	}, 10*testSlotDuration, testSlotDuration/5)

	f.stop(t)

	require.GreaterOrEqual(t, f.consumer.SealedCount(), 3)
	assert.Zero(t, f.consumer.SkippedCount())

	// every sealed block carries a decodable seal signed by this authority
	for _, block := range f.consumer.Sealed() {
		seal, err := model.DecodeSeal(block.Header.Seal)
		require.NoError(t, err)
		valid, err := f.authorities[0].PublicKey.Verify(seal.Signature, block.Header.Fingerprint(), hash.NewSHA3_256())
		require.NoError(t, err)
		assert.True(t, valid)
	}
}

// Sealed blocks carry strictly increasing slots, one slot never being sealed
// twice by the same worker.
func TestWorkerSealsDistinctSlots(t *testing.T) {
	f := newWorkerFixture(t, 1, 0)
	require.NoError(t, util.WaitClosed(context.Background(), f.worker.Ready()))

	require.Eventually(t, func() bool {
		return f.consumer.SealedCount() >= 4
	}, 12*testSlotDuration, testSlotDuration/5)

	f.stop(t)

	var prev model.Slot
	for i, block := range f.consumer.Sealed() {
		seal, err := model.DecodeSeal(block.Header.Seal)
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, seal.Slot, prev)
		}
		prev = seal.Slot
	}
}

// In a three-authority set with the two other authorities offline, this node
// produces only every third slot.
func TestWorkerSkipsForeignSlots(t *testing.T) {
	f := newWorkerFixture(t, 3, 0)
	require.NoError(t, util.WaitClosed(context.Background(), f.worker.Ready()))

	require.Eventually(t, func() bool {
		return f.consumer.SealedCount() >= 2
	}, 20*testSlotDuration, testSlotDuration/5)

	f.stop(t)

	for _, block := range f.consumer.Sealed() {
		seal, err := model.DecodeSeal(block.Header.Seal)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), uint64(seal.Slot)%3)
	}
}

func TestWorkerStopsOnCancel(t *testing.T) {
	f := newWorkerFixture(t, 1, 0)
	require.NoError(t, util.WaitClosed(context.Background(), f.worker.Ready()))

	f.cancel()
	select {
	case <-f.worker.Done():
	case <-time.After(10 * testSlotDuration):
		t.Fatal("worker did not shut down after cancellation")
	}

	sealed := f.consumer.SealedCount()
	time.Sleep(3 * testSlotDuration)
	assert.Equal(t, sealed, f.consumer.SealedCount())
}

// An unavailable signing key skips the slot rather than crashing the loop.
func TestWorkerSkipsOnSigningFailure(t *testing.T) {
	genesisTime := time.Now()
	genesis := unittest.GenesisHeaderFixture()
	authorities, _ := unittest.AuthorityListFixture(1)
	chain := unittest.NewFakeChain(genesis, authorities, testSlotDuration, genesisTime)

	clock, err := slots.NewClock(genesisTime, testSlotDuration)
	require.NoError(t, err)

	consumer := &eventConsumer{}
	w := worker.New(
		unittest.Logger(),
		&failingSigner{id: authorities[0].ID},
		clock,
		chain,
		&unittest.FakeProposer{},
		chain,
		consumer,
		metrics.NewNoopCollector(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	w.Start(signalerCtx)
	require.NoError(t, util.WaitClosed(ctx, w.Ready()))

	require.Eventually(t, func() bool {
		return consumer.SkippedCount() >= 2
	}, 10*testSlotDuration, testSlotDuration/5)

	cancel()
	require.NoError(t, util.WaitError(errChan, w.Done()))

	assert.Zero(t, consumer.SealedCount())
	assert.Equal(t, uint64(0), chain.Height())
}

// An empty authority set at the head makes production impossible; the worker
// throws at start-up instead of spinning uselessly.
func TestWorkerThrowsOnEmptyAuthoritySet(t *testing.T) {
	genesisTime := time.Now()
	genesis := unittest.GenesisHeaderFixture()
	authority, sk := unittest.AuthorityFixture()
	chain := unittest.NewFakeChain(genesis, model.AuthorityList{}, testSlotDuration, genesisTime)

	clock, err := slots.NewClock(genesisTime, testSlotDuration)
	require.NoError(t, err)

	me, err := local.New(authority, sk)
	require.NoError(t, err)

	w := worker.New(
		unittest.Logger(),
		me,
		clock,
		chain,
		&unittest.FakeProposer{},
		chain,
		&eventConsumer{},
		metrics.NewNoopCollector(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
	w.Start(signalerCtx)

	select {
	case err := <-errChan:
		require.Error(t, err)
		assert.True(t, model.IsConfigurationError(err))
		assert.ErrorIs(t, err, model.ErrEmptyAuthoritySet)
	case <-time.After(time.Second):
		t.Fatal("expected a configuration error at start-up")
	}
}
