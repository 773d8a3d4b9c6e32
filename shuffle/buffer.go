// SPDX-License-Identifier: MIT

package shuffle

import (
	"fmt"
	"math/rand"
	"sync"
)

// Buffer is a bounded multiset with random-order removal.
type Buffer[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items  []T
	cap    int
	rng    *rand.Rand // guarded by mu
	closed bool
}

// New returns an empty buffer holding at most capacity elements.
// Errors: ErrBadCapacity.
func New[T any](capacity int, opts ...Option) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("shuffle.New(%d): %w", capacity, ErrBadCapacity)
	}
	o := gatherOptions(opts...)
	b := &Buffer[T]{
		items: make([]T, 0, min(capacity, 1024)),
		cap:   capacity,
		rng:   o.rng,
	}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)

	return b, nil
}

// Put inserts v, blocking while the buffer is full.
// Errors: ErrClosed (also when Close happens while waiting).
func (b *Buffer[T]) Put(v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.items) >= b.cap && !b.closed {
		b.notFull.Wait()
	}
	if b.closed {
		return ErrClosed
	}
	b.items = append(b.items, v)
	b.notEmpty.Signal()

	return nil
}

// TryPut inserts v without blocking.
// Errors: ErrClosed, ErrFull.
func (b *Buffer[T]) TryPut(v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if len(b.items) >= b.cap {
		return ErrFull
	}
	b.items = append(b.items, v)
	b.notEmpty.Signal()

	return nil
}

// Take removes and returns a uniformly chosen element, blocking while the
// buffer is empty and open.
// Errors: ErrClosed once the buffer is closed and drained.
// Complexity: O(1) (swap-remove).
func (b *Buffer[T]) Take() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.items) == 0 && !b.closed {
		b.notEmpty.Wait()
	}
	var zero T
	if len(b.items) == 0 {
		return zero, ErrClosed
	}
	last := len(b.items) - 1
	k := b.rng.Intn(last + 1)
	v := b.items[k]
	b.items[k] = b.items[last]
	b.items[last] = zero // release references held by T
	b.items = b.items[:last]
	b.notFull.Signal()

	return v, nil
}

// Close marks the buffer closed and wakes all waiters. Idempotent.
func (b *Buffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}

// Cap returns the capacity given to New.
func (b *Buffer[T]) Cap() int { return b.cap }

// Closed reports whether Close has been called.
func (b *Buffer[T]) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}
