// Package async provides an observable container for the result of an
// asynchronous operation.
package async

import (
	"context"
	"sync"
)

// State is the phase of an asynchronous operation.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of a Cell. Version increases on every Set.
type Snapshot[T any] struct {
	State   State
	Value   T
	Err     error
	Version uint64
}

// Cell holds the latest Snapshot and notifies subscribers when it changes.
// Subscribers only ever see the most recent snapshot; intermediate ones may
// be skipped if the subscriber is slow.
type Cell[T any] struct {
	mu      sync.Mutex
	current Snapshot[T]
	subs    map[uint64]chan Snapshot[T]
	nextSub uint64
	changed chan struct{}
}

// NewCell returns an Idle cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{
		subs:    make(map[uint64]chan Snapshot[T]),
		changed: make(chan struct{}),
	}
}

// Get returns the current snapshot.
func (c *Cell[T]) Get() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set replaces the snapshot and returns it with its new version.
func (c *Cell[T]) Set(state State, value T, err error) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(state, value, err)
}

// CompareAndSet applies the update only if the current version still equals
// version. It reports whether the update happened.
func (c *Cell[T]) CompareAndSet(version uint64, state State, value T, err error) (Snapshot[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Version != version {
		return c.current, false
	}
	return c.setLocked(state, value, err), true
}

func (c *Cell[T]) setLocked(state State, value T, err error) Snapshot[T] {
	c.current = Snapshot[T]{
		State:   state,
		Value:   value,
		Err:     err,
		Version: c.current.Version + 1,
	}
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c.current
	}
	close(c.changed)
	c.changed = make(chan struct{})
	return c.current
}

// Subscribe returns a channel that receives every new snapshot (latest wins)
// and a cancel func that must be called to release it. The current snapshot
// is delivered immediately.
func (c *Cell[T]) Subscribe() (<-chan Snapshot[T], func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot[T], 1)
	ch <- c.current
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
	return ch, cancel
}

// Wait blocks until done returns true for the current snapshot or ctx ends.
func (c *Cell[T]) Wait(ctx context.Context, done func(Snapshot[T]) bool) (Snapshot[T], error) {
	for {
		c.mu.Lock()
		snap, changed := c.current, c.changed
		c.mu.Unlock()

		if done(snap) {
			return snap, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return snap, ctx.Err()
		}
	}
}

// Settled reports whether the snapshot is in a final state.
func Settled[T any](s Snapshot[T]) bool {
	return s.State == Success || s.State == Error
}
