package raii

import (
	"context"

	"github.com/llxisdsh/pb"
	"golang.org/x/sync/errgroup"
)

// Group tracks holders per key, e.g. open handles per file or in-flight
// requests per tenant. Each key owns an independent count.
//
// Acquire and Forget are serialized per key, so a key is never forgotten
// while an Acquire on it is in progress. Handles spawned from a WeakCounter
// returned by Weak do not go through the group and get no such guarantee.
//
// It is zero-value usable.
type Group[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *WeakCounter]
}

// Acquire returns a Counter of weight 1 on key's count, creating the key
// if needed.
func (g *Group[K]) Acquire(key K) *Counter {
	return g.AcquireWithWeight(key, 1)
}

// AcquireWithWeight returns a Counter of the given weight on key's count,
// creating the key if needed.
func (g *Group[K]) AcquireWithWeight(key K, weight uint64) *Counter {
	var c *Counter
	_, _ = g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *WeakCounter]) (*pb.EntryOf[K, *WeakCounter], *WeakCounter, bool) {
			if l != nil {
				c = l.Value.SpawnWithWeight(weight)
				return l, l.Value, true
			}
			w := NewWeakCounter()
			c = w.SpawnWithWeight(weight)
			return &pb.EntryOf[K, *WeakCounter]{Value: w}, w, false
		},
	)
	return c
}

// Weak returns a WeakCounter on key's count, if the key is tracked.
// Spawning from it bypasses the group, so Forget can drop the key just
// before a spawn. Counters spawned after that count on the detached state
// while Count reports 0 for the key.
func (g *Group[K]) Weak(key K) (*WeakCounter, bool) {
	w, ok := g.m.Load(key)
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

// Count returns key's current count, or 0 if the key is not tracked.
// This method is inherently racy.
func (g *Group[K]) Count(key K) uint64 {
	if w, ok := g.m.Load(key); ok {
		return w.Count()
	}
	return 0
}

// WaitForEmpty blocks until key's count reaches zero or ctx is done.
// It returns nil at once if the key is not tracked.
func (g *Group[K]) WaitForEmpty(ctx context.Context, key K) error {
	w, ok := g.m.Load(key)
	if !ok {
		return nil
	}
	return w.WaitForEmpty(ctx)
}

// WaitAll blocks until every key tracked at the time of the call has
// drained, or ctx is done. Keys added during the call are not waited for.
func (g *Group[K]) WaitAll(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	g.m.Range(func(_ K, w *WeakCounter) bool {
		eg.Go(func() error {
			return w.WaitForEmpty(ctx)
		})
		return true
	})
	return eg.Wait()
}

// Forget stops tracking key if its count is zero, and reports whether it
// did. Handles already obtained for the key stay valid but are no longer
// reachable through the group.
func (g *Group[K]) Forget(key K) bool {
	_, ok := g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *WeakCounter]) (*pb.EntryOf[K, *WeakCounter], *WeakCounter, bool) {
			if l != nil && l.Value.Count() == 0 {
				return nil, nil, true
			}
			return l, nil, false
		},
	)
	return ok
}

// Len returns the number of tracked keys.
func (g *Group[K]) Len() int {
	n := 0
	g.m.Range(func(K, *WeakCounter) bool {
		n++
		return true
	})
	return n
}
