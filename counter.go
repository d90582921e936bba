package raii

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Counter is a strong handle on a shared count. Each live Counter
// contributes its weight to the count, and Release takes that weight back.
//
// Every Counter must be released exactly once, usually with defer:
//
//	c := counter.Clone()
//	go func() {
//		defer c.Release()
//		// ...
//	}()
//
// Counter is used by pointer; the zero value is not usable.
type Counter struct {
	s        *state
	weight   uint64
	released atomic.Bool
}

// NewCounter creates a counter with a count of 1, held by the returned handle.
func NewCounter() *Counter {
	return NewCounterWithWeight(1)
}

// NewCounterWithWeight creates a counter whose only handle counts as weight
// units. A weight of 0 yields a handle that never affects the count.
func NewCounterWithWeight(weight uint64) *Counter {
	return &Counter{s: newState(weight), weight: weight}
}

// Clone adds another handle of the same weight to the count and returns it.
// The two handles are released independently.
//
// panic if c has already been released.
func (c *Counter) Clone() *Counter {
	if c.released.Load() {
		panic("raii: use of released Counter")
	}
	c.s.add(c.weight)
	return &Counter{s: c.s, weight: c.weight}
}

// Release subtracts the handle's weight from the count. Only the first
// call has an effect; later calls are no-ops, so an explicit Release can
// be combined with a deferred one.
func (c *Counter) Release() {
	if c.released.CompareAndSwap(false, true) {
		c.s.sub(c.weight)
	}
}

// Close releases the handle. It always returns nil.
// It lets a Counter be used where an io.Closer is expected.
func (c *Counter) Close() error {
	c.Release()
	return nil
}

// Downgrade releases c and returns a WeakCounter that observes the same
// count.
//
// panic if c has already been released.
func (c *Counter) Downgrade() *WeakCounter {
	if !c.released.CompareAndSwap(false, true) {
		panic("raii: use of released Counter")
	}
	w := &WeakCounter{s: c.s}
	c.s.sub(c.weight)
	return w
}

// Count returns the current count.
// This method is inherently racy. Assume the count will have changed once
// the value is observed.
func (c *Counter) Count() uint64 {
	return c.s.get()
}

// Weight returns how much this handle contributes to the count.
func (c *Counter) Weight() uint64 {
	return c.weight
}

// Released reports whether Release, Close or Downgrade has been called.
func (c *Counter) Released() bool {
	return c.released.Load()
}

// WaitForEmpty blocks until the count reaches zero or ctx is done, in which
// case it returns ctx.Err(). While c itself is live the count cannot reach
// zero, so c must be released by someone else first.
func (c *Counter) WaitForEmpty(ctx context.Context) error {
	return c.s.wait(ctx)
}

// Wait blocks until the count reaches zero.
func (c *Counter) Wait() {
	_ = c.s.wait(context.Background())
}

func (c *Counter) String() string {
	return fmt.Sprintf("Counter(count=%d)", c.Count())
}

// WeakCounter observes a shared count without contributing to it.
// It can spawn new Counters on the same count at any time.
type WeakCounter struct {
	s *state
}

// NewWeakCounter creates a counter with a count of 0.
func NewWeakCounter() *WeakCounter {
	return &WeakCounter{s: newState(0)}
}

// Spawn returns a new Counter of weight 1 on w's count.
func (w *WeakCounter) Spawn() *Counter {
	return w.SpawnWithWeight(1)
}

// SpawnWithWeight returns a new Counter of the given weight on w's count.
// The count is increased once, by weight.
func (w *WeakCounter) SpawnWithWeight(weight uint64) *Counter {
	w.s.add(weight)
	return &Counter{s: w.s, weight: weight}
}

// Upgrade returns a new Counter of weight 1 on w's count. Callers that
// are done with w may simply drop it afterwards.
func (w *WeakCounter) Upgrade() *Counter {
	return w.Spawn()
}

// Clone returns another WeakCounter on the same count. It does not change
// the count.
func (w *WeakCounter) Clone() *WeakCounter {
	return &WeakCounter{s: w.s}
}

// Count returns the current count.
// This method is inherently racy. Assume the count will have changed once
// the value is observed.
func (w *WeakCounter) Count() uint64 {
	return w.s.get()
}

// WaitForEmpty blocks until the count reaches zero or ctx is done, in which
// case it returns ctx.Err().
func (w *WeakCounter) WaitForEmpty(ctx context.Context) error {
	return w.s.wait(ctx)
}

// Wait blocks until the count reaches zero.
func (w *WeakCounter) Wait() {
	_ = w.s.wait(context.Background())
}

func (w *WeakCounter) String() string {
	return fmt.Sprintf("WeakCounter(count=%d)", w.Count())
}
