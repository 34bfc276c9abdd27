// aura-sim runs an in-process simulation of an authority round network: it
// spins up one slot worker per authority over a shared in-memory chain and
// verifies every produced block before import, printing the resulting chain
// activity to the console.
//
// All authorities run in the same process and share a wall clock, so the
// simulation exercises the production and verification paths end to end
// without any networking.
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/onflow/flow-go/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/aurachain/aura/consensus/aura"
	"github.com/aurachain/aura/consensus/aura/equivocation"
	"github.com/aurachain/aura/consensus/aura/notifications"
	"github.com/aurachain/aura/consensus/aura/slots"
	"github.com/aurachain/aura/consensus/aura/verifier"
	"github.com/aurachain/aura/consensus/aura/worker"
	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/module"
	"github.com/aurachain/aura/module/irrecoverable"
	"github.com/aurachain/aura/module/local"
	"github.com/aurachain/aura/module/metrics"
	"github.com/aurachain/aura/module/util"
	"github.com/aurachain/aura/utils/unittest"
)

func main() {
	var (
		numAuthorities int
		slotDuration   time.Duration
		runFor         time.Duration
		logLevel       string
	)

	pflag.IntVar(&numAuthorities, "authorities", 3, "number of authorities in the simulated network")
	pflag.DurationVar(&slotDuration, "slot-duration", time.Second, "duration of one slot")
	pflag.DurationVar(&runFor, "duration", 15*time.Second, "how long to run the simulation")
	pflag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pflag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli}).
		Level(level).
		With().Timestamp().Logger()

	if err := run(log, numAuthorities, slotDuration, runFor); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

// verifiedImporter verifies each block before handing it to the chain, the
// way a real node verifies gossiped blocks before import.
type verifiedImporter struct {
	verifier *verifier.Verifier
	chain    *unittest.FakeChain
}

func (vi *verifiedImporter) ImportBlock(block *model.Block) error {
	err := vi.verifier.VerifyHeader(block.Header)
	if err != nil {
		return fmt.Errorf("block failed verification: %w", err)
	}
	return vi.chain.ImportBlock(block)
}

func run(log zerolog.Logger, numAuthorities int, slotDuration time.Duration, runFor time.Duration) error {
	if numAuthorities < 1 {
		return model.NewConfigurationErrorf("need at least one authority, got %d", numAuthorities)
	}

	authorities := make(model.AuthorityList, 0, numAuthorities)
	keys := make([]crypto.PrivateKey, 0, numAuthorities)
	for i := 0; i < numAuthorities; i++ {
		seed := make([]byte, crypto.KeyGenSeedMinLen)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("could not read key seed: %w", err)
		}
		sk, err := crypto.GeneratePrivateKey(crypto.ECDSAP256, seed)
		if err != nil {
			return fmt.Errorf("could not generate authority key: %w", err)
		}
		authorities = append(authorities, model.NewAuthority(sk.PublicKey()))
		keys = append(keys, sk)
	}
	if err := authorities.Validate(); err != nil {
		return err
	}

	genesisTime := time.Now()
	genesis := &model.Header{
		ChainID:     "aura-sim",
		ParentID:    model.ZeroID,
		Height:      0,
		PayloadHash: model.EmptyPayload().Hash(),
		Timestamp:   uint64(genesisTime.Unix()),
	}
	chain := unittest.NewFakeChain(genesis, authorities, slotDuration, genesisTime)

	clock, err := slots.NewClock(chain.GenesisTime(), chain.SlotDuration())
	if err != nil {
		return err
	}

	notifier := notifications.NewLogConsumer(log)
	collector := metrics.NewAuraCollector(prometheus.NewRegistry())

	v := verifier.New(log, clock, chain, equivocation.NewLedger(), notifier, collector, aura.DefaultConfig())
	importer := &verifiedImporter{verifier: v, chain: chain}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runFor)
	defer cancel()

	log.Info().
		Int("authorities", numAuthorities).
		Dur("slot_duration", slotDuration).
		Dur("run_for", runFor).
		Msg("starting simulation")

	var g errgroup.Group
	workers := make([]module.ReadyDoneAware, 0, numAuthorities)
	for i := range authorities {
		me, err := local.New(authorities[i], keys[i])
		if err != nil {
			return err
		}
		nodeLog := log.With().Str("node", authorities[i].String()).Logger()
		w := worker.New(nodeLog, me, clock, chain, &unittest.FakeProposer{ChainID: genesis.ChainID}, importer, notifier, collector)

		signalerCtx, errChan := irrecoverable.WithSignaler(ctx)
		w.Start(signalerCtx)
		workers = append(workers, w)

		g.Go(func() error {
			return util.WaitError(errChan, w.Done())
		})
	}

	if err := util.WaitClosed(ctx, util.AllReady(workers...)); err == nil {
		log.Info().Msg("all workers ready")
	}

	err = g.Wait()
	if err != nil {
		return err
	}
	<-util.AllDone(workers...)

	log.Info().
		Uint64("final_height", chain.Height()).
		Msg("simulation finished")
	return nil
}
