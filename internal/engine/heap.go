package engine

import "github.com/roach88/tapesort/internal/tape"

// cursor is one pending element of the merge: the smallest unconsumed
// value of a run together with that run's index.
type cursor[T tape.Value] struct {
	value T
	run   int
}

// runHeap is a min-heap of run cursors for container/heap. Ordering is
// by value, ties broken by run index, so duplicate keys drain in run
// order and the merge output is deterministic.
type runHeap[T tape.Value] struct {
	entries []cursor[T]
}

func (h *runHeap[T]) Len() int { return len(h.entries) }

func (h *runHeap[T]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.value != b.value {
		return a.value < b.value
	}
	return a.run < b.run
}

func (h *runHeap[T]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *runHeap[T]) Push(x any) {
	h.entries = append(h.entries, x.(cursor[T]))
}

func (h *runHeap[T]) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries = h.entries[:n-1]
	return e
}
