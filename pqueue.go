// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dstarlite

import (
	"container/heap"
	"fmt"
	"math"
)

// pqKey is the lexicographically-ordered priority of a cell in the open
// set: (k1, k2) = (min(g,rhs) + h(cell,start) + km, min(g,rhs)).
type pqKey struct {
	K1, K2 float64
}

func (a pqKey) String() string {
	return fmt.Sprintf("key(%v, %v)", a.K1, a.K2)
}

// compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b under lexicographic order.
func (a pqKey) compare(b pqKey) int {
	if a.K1 < b.K1 {
		return -1
	} else if a.K1 > b.K1 {
		return 1
	}
	if a.K2 < b.K2 {
		return -1
	} else if a.K2 > b.K2 {
		return 1
	}
	return 0
}

var infKey = pqKey{math.Inf(1), math.Inf(1)}

// pqEntry is one heap slot. tombstoned entries are garbage: they are
// discarded the next time they surface at the root, rather than being
// removed from the interior of the heap immediately. seq breaks ties
// between equal keys so that pops are deterministic.
type pqEntry struct {
	cell       Cell
	key        pqKey
	seq        int
	tombstoned bool
}

// pqHeap is the container/heap-backed storage for pqEntry values, kept
// ordered by (key, seq).
type pqHeap []*pqEntry

func (h pqHeap) Len() int { return len(h) }

func (h pqHeap) Less(i, j int) bool {
	c := h[i].key.compare(h[j].key)
	if c != 0 {
		return c == -1
	}
	return h[i].seq < h[j].seq
}

func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pqHeap) Push(x interface{}) {
	*h = append(*h, x.(*pqEntry))
}

func (h *pqHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// priorityQueue is an indexed, tombstoning min-heap: O(log n) insert,
// O(1) remove/contains via an auxiliary cell->entry index, lazy
// deletion of stale entries at the root.
type priorityQueue struct {
	heap    pqHeap
	entries map[Cell]*pqEntry
	counter int
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{entries: make(map[Cell]*pqEntry)}
}

// insert adds cell to the queue with priority k. If cell is already
// present, its old entry is tombstoned first: re-insertion is always
// possible and never produces a duplicate live entry for the same
// cell.
func (q *priorityQueue) insert(cell Cell, k pqKey) {
	if old, ok := q.entries[cell]; ok {
		old.tombstoned = true
	}
	e := &pqEntry{cell: cell, key: k, seq: q.counter}
	q.counter++
	q.entries[cell] = e
	heap.Push(&q.heap, e)
}

// remove tombstones cell's current entry and drops it from the index.
// O(1).
func (q *priorityQueue) remove(cell Cell) {
	if e, ok := q.entries[cell]; ok {
		e.tombstoned = true
		delete(q.entries, cell)
	}
}

// contains reports whether cell has a live entry in the queue.
func (q *priorityQueue) contains(cell Cell) bool {
	_, ok := q.entries[cell]
	return ok
}

// isEmpty reports whether the queue holds no live entries.
func (q *priorityQueue) isEmpty() bool {
	return len(q.entries) == 0
}

// discardTombstones drops tombstoned entries sitting at the heap root
// until a live entry surfaces or the heap is exhausted.
func (q *priorityQueue) discardTombstones() {
	for len(q.heap) > 0 && q.heap[0].tombstoned {
		heap.Pop(&q.heap)
	}
}

// topKey returns the smallest live key in the queue, or (+Inf,+Inf) if
// empty.
func (q *priorityQueue) topKey() pqKey {
	q.discardTombstones()
	if len(q.heap) == 0 {
		return infKey
	}
	return q.heap[0].key
}

// top returns the cell with the smallest live key without removing it.
func (q *priorityQueue) top() Cell {
	q.discardTombstones()
	return q.heap[0].cell
}

// pop removes and returns the cell with the smallest live key. It is a
// programming error to call pop on an empty queue.
func (q *priorityQueue) pop() Cell {
	q.discardTombstones()
	e := heap.Pop(&q.heap).(*pqEntry)
	delete(q.entries, e.cell)
	return e.cell
}

// clear drops every entry from the queue.
func (q *priorityQueue) clear() {
	q.heap = q.heap[:0]
	q.entries = make(map[Cell]*pqEntry)
	q.counter = 0
}
