package unittest

import (
	"context"
	"fmt"
	"sync"
	"time"

	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/module"
)

// FakeChain is an in-memory stand-in for the external chain client. It
// implements module.ChainState and module.BlockImporter, tracking a single
// best chain without forks: a block imports only on top of the current head.
type FakeChain struct {
	mu           sync.Mutex
	headers      map[model.Identifier]*model.Header
	head         model.Identifier
	authorities  model.AuthorityList
	slotDuration time.Duration
	genesisTime  time.Time
}

var _ module.ChainState = (*FakeChain)(nil)
var _ module.BlockImporter = (*FakeChain)(nil)

// NewFakeChain creates a chain rooted at the given genesis header, with a
// fixed authority set and slot duration.
func NewFakeChain(genesis *model.Header, authorities model.AuthorityList, slotDuration time.Duration, genesisTime time.Time) *FakeChain {
	fc := &FakeChain{
		headers:      map[model.Identifier]*model.Header{genesis.ID(): genesis},
		head:         genesis.ID(),
		authorities:  authorities,
		slotDuration: slotDuration,
		genesisTime:  genesisTime,
	}
	return fc
}

func (fc *FakeChain) Head() (*model.Header, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.headers[fc.head], nil
}

func (fc *FakeChain) AuthoritiesForBlock(blockID model.Identifier) (model.AuthorityList, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if _, ok := fc.headers[blockID]; !ok {
		return nil, fmt.Errorf("unknown block %x", blockID)
	}
	return fc.authorities, nil
}

func (fc *FakeChain) SlotDuration() time.Duration {
	return fc.slotDuration
}

func (fc *FakeChain) GenesisTime() time.Time {
	return fc.genesisTime
}

func (fc *FakeChain) ImportBlock(block *model.Block) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	blockID := block.ID()
	if _, ok := fc.headers[blockID]; ok {
		return module.ErrAlreadyImported
	}
	if block.Header.ParentID != fc.head {
		return module.ErrUnknownParent
	}
	fc.headers[blockID] = block.Header
	fc.head = blockID
	return nil
}

// Height returns the height of the current head.
func (fc *FakeChain) Height() uint64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.headers[fc.head].Height
}

// FakeProposer is an in-memory stand-in for the external proposer. It builds
// empty blocks on top of the given parent, optionally after a fixed delay to
// simulate slow proposal construction.
type FakeProposer struct {
	ChainID string
	Delay   time.Duration
}

var _ module.Proposer = (*FakeProposer)(nil)

func (fp *FakeProposer) ProposeBlock(ctx context.Context, parent *model.Header) (*model.Block, error) {
	if fp.Delay > 0 {
		timer := time.NewTimer(fp.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	chainID := fp.ChainID
	if chainID == "" {
		chainID = DefaultChainID
	}
	block := &model.Block{
		Header: &model.Header{
			ChainID:   chainID,
			ParentID:  parent.ID(),
			Height:    parent.Height + 1,
			Timestamp: uint64(time.Now().Unix()),
		},
	}
	block.SetPayload(model.EmptyPayload())
	return block, nil
}
