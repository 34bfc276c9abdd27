package util_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurachain/aura/module"
	"github.com/aurachain/aura/module/util"
)

// readyDone is a minimal ReadyDoneAware with externally controlled channels.
type readyDone struct {
	ready chan struct{}
	done  chan struct{}
}

func newReadyDone() *readyDone {
	return &readyDone{
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (rd *readyDone) Ready() <-chan struct{} { return rd.ready }
func (rd *readyDone) Done() <-chan struct{}  { return rd.done }

func TestAllReady(t *testing.T) {
	components := []*readyDone{newReadyDone(), newReadyDone(), newReadyDone()}
	all := util.AllReady(components[0], components[1], components[2])

	close(components[0].ready)
	close(components[1].ready)
	select {
	case <-all:
		t.Fatal("channel closed with one component still not ready")
	case <-time.After(10 * time.Millisecond):
	}

	close(components[2].ready)
	select {
	case <-all:
	case <-time.After(time.Second):
		t.Fatal("channel not closed after all components became ready")
	}
}

func TestAllDone(t *testing.T) {
	components := []module.ReadyDoneAware{newReadyDone(), newReadyDone()}
	all := util.AllDone(components...)

	for _, c := range components {
		close(c.(*readyDone).done)
	}
	select {
	case <-all:
	case <-time.After(time.Second):
		t.Fatal("channel not closed after all components shut down")
	}
}

func TestAllClosedEmpty(t *testing.T) {
	select {
	case <-util.AllClosed():
	case <-time.After(time.Second):
		t.Fatal("channel not closed for empty input")
	}
}

func TestWaitClosed(t *testing.T) {
	t.Run("channel closes first", func(t *testing.T) {
		ch := make(chan struct{})
		close(ch)
		require.NoError(t, util.WaitClosed(context.Background(), ch))
	})

	t.Run("context cancelled first", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := util.WaitClosed(ctx, make(chan struct{}))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWaitError(t *testing.T) {
	t.Run("clean shutdown", func(t *testing.T) {
		done := make(chan struct{})
		close(done)
		require.NoError(t, util.WaitError(make(chan error, 1), done))
	})

	t.Run("error before shutdown", func(t *testing.T) {
		expected := errors.New("worker failed")
		errChan := make(chan error, 1)
		errChan <- expected
		err := util.WaitError(errChan, make(chan struct{}))
		assert.ErrorIs(t, err, expected)
	})

	// the error must win even when both channels are readable
	t.Run("error and shutdown race", func(t *testing.T) {
		expected := errors.New("worker failed")
		done := make(chan struct{})
		close(done)
		for i := 0; i < 20; i++ {
			errChan := make(chan error, 1)
			errChan <- expected
			assert.ErrorIs(t, util.WaitError(errChan, done), expected)
		}
	})
}
