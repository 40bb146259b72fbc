// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dstarlite

import "math"

// dimensioned is implemented by cost providers that can report a fixed
// W x H domain, allowing the planner to preallocate a dense node-state
// table instead of a sparse map. *GridMap and *traffic.Overlay both
// implement it.
type dimensioned interface {
	Dimensions() (int, int)
}

// denseThreshold bounds the grid size for which a dense []float64
// backing is preallocated; a dense array gives better cache behavior
// up to about 10^6 cells. Larger or dimension-less domains fall back to
// a sparse map keyed by Cell.
const denseThreshold = 1_000_000

// nodeStore holds the per-cell g and rhs fields the planner maintains
// across PlanPath/UpdateObstacles/ReplanPath calls. The sparse store
// creates entries on first write; the dense store is allocated once at
// planner construction. For a full PlanPath call either is reset in
// place rather than reallocated, so GridMap mutations accumulated between plans are never
// discarded by resetting node state.
type nodeStore interface {
	getG(c Cell) float64
	getRhs(c Cell) float64
	setG(c Cell, v float64)
	setRhs(c Cell, v float64)
	reset()
}

func newNodeStore(cp CostProvider) nodeStore {
	if d, ok := cp.(dimensioned); ok {
		w, h := d.Dimensions()
		if w > 0 && h > 0 && w*h <= denseThreshold {
			return newDenseNodeStore(w, h)
		}
	}
	return newMapNodeStore()
}

// mapNodeStore is the general-purpose, sparse backing: absent entries
// read as +Inf, a lazily-created node table keyed by Cell.
type mapNodeStore struct {
	g, rhs map[Cell]float64
}

func newMapNodeStore() *mapNodeStore {
	return &mapNodeStore{g: make(map[Cell]float64), rhs: make(map[Cell]float64)}
}

func (s *mapNodeStore) getG(c Cell) float64 {
	if v, ok := s.g[c]; ok {
		return v
	}
	return math.Inf(1)
}

func (s *mapNodeStore) getRhs(c Cell) float64 {
	if v, ok := s.rhs[c]; ok {
		return v
	}
	return math.Inf(1)
}

func (s *mapNodeStore) setG(c Cell, v float64)   { s.g[c] = v }
func (s *mapNodeStore) setRhs(c Cell, v float64) { s.rhs[c] = v }

func (s *mapNodeStore) reset() {
	clear(s.g)
	clear(s.rhs)
}

// denseNodeStore backs a bounded W x H domain with flat []float64
// slices for better cache behavior than a hash-keyed map.
type denseNodeStore struct {
	width, height int
	g, rhs        []float64
}

func newDenseNodeStore(width, height int) *denseNodeStore {
	s := &denseNodeStore{width: width, height: height, g: make([]float64, width*height), rhs: make([]float64, width*height)}
	s.reset()
	return s
}

func (s *denseNodeStore) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < s.width && c.Y >= 0 && c.Y < s.height
}

func (s *denseNodeStore) idx(c Cell) int { return c.Y*s.width + c.X }

func (s *denseNodeStore) getG(c Cell) float64 {
	if !s.inBounds(c) {
		return math.Inf(1)
	}
	return s.g[s.idx(c)]
}

func (s *denseNodeStore) getRhs(c Cell) float64 {
	if !s.inBounds(c) {
		return math.Inf(1)
	}
	return s.rhs[s.idx(c)]
}

func (s *denseNodeStore) setG(c Cell, v float64) {
	if s.inBounds(c) {
		s.g[s.idx(c)] = v
	}
}

func (s *denseNodeStore) setRhs(c Cell, v float64) {
	if s.inBounds(c) {
		s.rhs[s.idx(c)] = v
	}
}

func (s *denseNodeStore) reset() {
	for i := range s.g {
		s.g[i] = math.Inf(1)
		s.rhs[i] = math.Inf(1)
	}
}
