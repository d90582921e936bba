package raii

import (
	"context"
	"sync/atomic"

	"github.com/llxisdsh/raii/internal/opt"
)

// signal is a level-triggered event. The shared setSignal value means
// "set"; every other signal is "clear" and its channel is closed exactly
// once, by whoever swaps it out for setSignal.
type signal struct {
	ch chan struct{}
}

var setSignal = func() *signal {
	s := &signal{ch: make(chan struct{})}
	close(s.ch)
	return s
}()

func newSignal(empty bool) *signal {
	if empty {
		return setSignal
	}
	return &signal{ch: make(chan struct{})}
}

// state is the count shared by every handle of one lineage, paired with a
// signal that is set exactly when the count is zero.
//
// Both words are updated lock-free. The count is the source of truth; the
// signal only tells waiters when to look at it again. Any goroutine that
// moves the count to or from zero reconciles the signal afterwards, and
// re-checks after each of its own writes, so at every quiescent point
// the signal agrees with the count.
type state struct {
	_      noCopy
	count  opt.PaddedUint64
	signal atomic.Pointer[signal]
}

func newState(initial uint64) *state {
	s := &state{}
	s.count.Store(initial)
	s.signal.Store(newSignal(initial == 0))
	return s
}

// add adds n to the count. It panics if the count would overflow.
func (s *state) add(n uint64) {
	if n == 0 {
		return
	}
	for {
		c := s.count.Load()
		if c+n < c {
			panic("raii: counter overflow")
		}
		if s.count.CompareAndSwap(c, c+n) {
			if c == 0 {
				s.sync()
			}
			return
		}
	}
}

// sub subtracts n from the count. Subtracting more than is held is an
// accounting bug in the caller; it panics instead of wrapping around.
func (s *state) sub(n uint64) {
	if n == 0 {
		return
	}
	for {
		c := s.count.Load()
		if n > c {
			panic("raii: negative counter")
		}
		if s.count.CompareAndSwap(c, c-n) {
			if c == n {
				s.sync()
			}
			return
		}
	}
}

// sync brings the signal in line with the count.
//
// A successful swap is always followed by another pass, so the last
// goroutine to write the signal has checked it against a count loaded
// after that write. Mutations that keep the count on the same side of
// zero never change the wanted signal and skip this entirely.
func (s *state) sync() {
	for {
		sig := s.signal.Load()
		empty := s.count.Load() == 0
		if empty == (sig == setSignal) {
			return
		}
		if empty {
			if s.signal.CompareAndSwap(sig, setSignal) {
				close(sig.ch)
			}
		} else {
			s.signal.CompareAndSwap(sig, newSignal(false))
		}
	}
}

// get returns the current count.
// This method is inherently racy. Assume the count will have changed once
// the value is observed.
func (s *state) get() uint64 {
	return s.count.Load()
}

// wait blocks until the count is zero or ctx is done.
//
// A wake only means the count touched zero at some point; holders may have
// come back before this goroutine runs, so the count is loaded again
// after every wake. Returning early on ctx never changes the count.
func (s *state) wait(ctx context.Context) error {
	for {
		// Load the signal before the count: if the count is non-zero
		// afterwards, reaching zero must close this signal or a later one.
		sig := s.signal.Load()
		if s.count.Load() == 0 {
			return nil
		}
		if sig == setSignal {
			// The count left zero but the writer has not cleared the
			// signal yet. Help it along instead of spinning.
			s.sync()
			continue
		}
		select {
		case <-sig.ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
