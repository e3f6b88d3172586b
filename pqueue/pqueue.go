// Package pqueue implements a binary min-heap with a pluggable comparator.
package pqueue

import (
	"cmp"
	"container/heap"
)

// items implements heap.Interface for Queue
type items[T any] struct {
	data []T
	less func(a, b T) bool
}

func (h items[T]) Len() int { return len(h.data) }

func (h items[T]) Less(i, j int) bool {
	return h.less(h.data[i], h.data[j])
}

func (h items[T]) Swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
}

func (h *items[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

func (h *items[T]) Pop() any {
	old := h.data
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	h.data = old[:n-1]
	return item
}

// Queue is a min-heap: Pop returns the element for which less reports true
// against every other element. There is no decrease-key; callers push a
// fresh entry and discard stale ones when they surface.
type Queue[T any] struct {
	h items[T]
}

// New returns a queue ordered ascending by the natural order of T.
func New[T cmp.Ordered]() *Queue[T] {
	return NewFunc(cmp.Less[T])
}

// NewFunc returns a queue ordered by less.
func NewFunc[T any](less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{h: items[T]{less: less}}
}

// Push appends item and sifts it up.
func (q *Queue[T]) Push(item T) {
	heap.Push(&q.h, item)
}

// Pop removes and returns the smallest item. ok is false when the queue is
// empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	if len(q.h.data) == 0 {
		return item, false
	}
	return heap.Pop(&q.h).(T), true
}

// Peek returns the smallest item without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.h.data) == 0 {
		return item, false
	}
	return q.h.data[0], true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.h.data)
}

// Clear drops all items.
func (q *Queue[T]) Clear() {
	clear(q.h.data)
	q.h.data = q.h.data[:0]
}
