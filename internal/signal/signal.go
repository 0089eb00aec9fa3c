// Package signal provides generic single-writer value cells for decoupled
// communication between the render-event path and the animation loop.
package signal

import "sync/atomic"

// Reader provides read access to the latest published value.
type Reader[T any] interface {
	Load() T
}

// Writer provides write access. Exactly one writer may exist per cell, so
// no read-modify-write races are possible.
type Writer[T any] interface {
	Publish(T)
}

// Cell is a latest-value cell. The zero value holds T's zero value.
type Cell[T any] struct {
	v atomic.Pointer[T]
}

// New creates a cell holding an initial value.
func New[T any](initial T) *Cell[T] {
	c := &Cell[T]{}
	c.v.Store(&initial)
	return c
}

// Publish replaces the current value.
func (c *Cell[T]) Publish(v T) {
	c.v.Store(&v)
}

// Load returns the most recently published value. A nil cell reads as
// T's zero value, so a typed-nil *Cell stored behind a Reader is safe.
func (c *Cell[T]) Load() T {
	if c == nil {
		var zero T
		return zero
	}
	p := c.v.Load()
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
