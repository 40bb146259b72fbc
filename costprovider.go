// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dstarlite

import "math"

// CostProvider is the interface the Planner queries for neighbors, edge
// costs, and the search heuristic. *GridMap is adapted to it with an
// additive cost model by NewGridPlanner; traffic.Overlay implements it
// directly with a multiplicative composition. The planner itself is unaware of which
// implementation it holds.
type CostProvider interface {
	// Neighbors returns the passable 8-connected neighbors of c, in a
	// fixed, deterministic order.
	Neighbors(c Cell) []Cell
	// EdgeCost returns the cost of moving from a to neighboring cell b.
	// +Inf if b is an obstacle.
	EdgeCost(a, b Cell) float64
	// Heuristic estimates the cost from a to b. Must be admissible and
	// consistent for the planner's optimality guarantee to hold.
	Heuristic(a, b Cell) float64
	// InBounds reports whether c lies within the provider's domain.
	InBounds(c Cell) bool
	// IsObstacle reports whether c is impassable.
	IsObstacle(c Cell) bool
}

// defaultHeuristicWeight is the default caller-supplied weight w in
// h(a,b) = w * euclidean(a,b). w == 1 keeps the heuristic admissible and
// the resulting path optimal; w > 1 trades optimality for speed.
const defaultHeuristicWeight = 1.0

// gridCostProvider adapts *GridMap to CostProvider with an additive
// cost model: base(a,b) (1 for cardinal, sqrt(2) for diagonal) plus
// the destination cell's terrain multiplier, and a weighted Euclidean
// heuristic.
type gridCostProvider struct {
	grid   *GridMap
	weight float64
}

func (p *gridCostProvider) Neighbors(c Cell) []Cell {
	return p.grid.Neighbors8(c.X, c.Y)
}

func (p *gridCostProvider) Dimensions() (int, int) { return p.grid.Dimensions() }

func (p *gridCostProvider) InBounds(c Cell) bool    { return p.grid.InBounds(c.X, c.Y) }
func (p *gridCostProvider) IsObstacle(c Cell) bool  { return p.grid.IsObstacle(c.X, c.Y) }

func (p *gridCostProvider) EdgeCost(a, b Cell) float64 {
	if p.grid.IsObstacle(b.X, b.Y) {
		return math.Inf(1)
	}
	return baseCost(a, b) + p.grid.TerrainCost(b.X, b.Y)
}

func (p *gridCostProvider) Heuristic(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return p.weight * math.Sqrt(dx*dx+dy*dy)
}

// baseCost is the unweighted edge length between 8-connected neighbors:
// sqrt(2) for a diagonal step, 1 for a cardinal step. The terrain
// multiplier is applied additively on top of this, not
// multiplicatively (see DESIGN.md).
func baseCost(a, b Cell) float64 {
	if a.X != b.X && a.Y != b.Y {
		return math.Sqrt2
	}
	return 1
}
