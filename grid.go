// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dstarlite

import (
	"math"
	"math/rand"
)

// CornerRule selects how GridMap.Neighbors8 treats diagonal moves that
// pass between the corners of two axis-aligned obstacles.
type CornerRule int

const (
	// CornerCuttingAllowed permits a diagonal (x,y)->(x+dx,y+dy) even
	// when both orthogonal neighbors (x+dx,y) and (x,y+dy) are
	// obstacles. Used by the traffic-aware deployment.
	CornerCuttingAllowed CornerRule = iota
	// CornerCuttingForbidden rejects a diagonal move when either
	// orthogonal neighbor is an obstacle. Preferred for general-purpose
	// use where an agent has physical extent.
	CornerCuttingForbidden
)

// cellState holds the per-cell terrain classification and multiplier.
type cellState struct {
	class CellClass
	mult  float64
}

// GridMap is a rectangular W x H cellular terrain model. It answers
// three queries for the planner: whether a cell is passable, the
// per-cell terrain multiplier, and the passable 8-connected neighbors of
// a cell. Dimensions are fixed at construction; mutation operations are
// idempotent with respect to repeated application.
type GridMap struct {
	width, height int
	cells         []cellState
	corner        CornerRule
}

// NewGridMap returns a GridMap of the given dimensions with every cell
// passable and a terrain multiplier of 1.
func NewGridMap(width, height int) *GridMap {
	cells := make([]cellState, width*height)
	for i := range cells {
		cells[i] = cellState{class: Passable, mult: 1}
	}
	return &GridMap{width: width, height: height, cells: cells, corner: CornerCuttingAllowed}
}

// SetCornerRule selects whether diagonal moves may cut between two
// obstacle corners. The default is CornerCuttingAllowed.
func (g *GridMap) SetCornerRule(r CornerRule) {
	g.corner = r
}

// Width returns the grid's column count.
func (g *GridMap) Width() int { return g.width }

// Height returns the grid's row count.
func (g *GridMap) Height() int { return g.height }

// Dimensions reports the grid's width and height, letting Planner
// preallocate a dense node-state table (see nodeStore).
func (g *GridMap) Dimensions() (int, int) { return g.width, g.height }

func (g *GridMap) index(x, y int) int { return y*g.width + x }

// InBounds reports whether (x,y) lies within [0,Width) x [0,Height).
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsObstacle reports whether (x,y) is out of bounds or classed as an
// obstacle.
func (g *GridMap) IsObstacle(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[g.index(x, y)].class == Obstacle
}

// TerrainCost returns the terrain multiplier at (x,y), or +Inf if out of
// bounds. The result for obstacle cells is undefined; callers must check
// IsObstacle first.
func (g *GridMap) TerrainCost(x, y int) float64 {
	if !g.InBounds(x, y) {
		return math.Inf(1)
	}
	return g.cells[g.index(x, y)].mult
}

// SetObstacle marks (x,y) as an obstacle (flag true) or passable with a
// unit multiplier (flag false). Out-of-bounds coordinates are ignored.
// Returns the applied change record; idempotent under repeated calls
// with the same flag.
func (g *GridMap) SetObstacle(x, y int, flag bool) ObstacleChange {
	if g.InBounds(x, y) {
		i := g.index(x, y)
		if flag {
			g.cells[i] = cellState{class: Obstacle}
		} else {
			g.cells[i] = cellState{class: Passable, mult: 1}
		}
	}
	return ObstacleChange{X: x, Y: y, NowBlocked: flag}
}

// AddRect marks every in-bounds cell in the inclusive rectangle
// [x1,x2]x[y1,y2] as an obstacle. The corners may be given in either
// order.
func (g *GridMap) AddRect(x1, y1, x2, y2 int) []ObstacleChange {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var changes []ObstacleChange
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if g.InBounds(x, y) {
				changes = append(changes, g.SetObstacle(x, y, true))
			}
		}
	}
	return changes
}

// AddDisc marks every in-bounds cell with (x-cx)^2+(y-cy)^2 <= r^2 as an
// obstacle.
func (g *GridMap) AddDisc(cx, cy, r int) []ObstacleChange {
	var changes []ObstacleChange
	rr := r * r
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr && g.InBounds(x, y) {
				changes = append(changes, g.SetObstacle(x, y, true))
			}
		}
	}
	return changes
}

// AddRoughRect marks every in-bounds, non-obstacle cell in the inclusive
// rectangle as rough terrain with multiplier m.
func (g *GridMap) AddRoughRect(x1, y1, x2, y2 int, m float64) []ObstacleChange {
	assertNonNegative(m)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var changes []ObstacleChange
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			i := g.index(x, y)
			if g.cells[i].class == Obstacle {
				continue
			}
			g.cells[i] = cellState{class: Rough, mult: m}
			changes = append(changes, ObstacleChange{X: x, Y: y, NowBlocked: false})
		}
	}
	return changes
}

// ClearRect resets every in-bounds cell in the inclusive rectangle to
// passable with a unit multiplier.
func (g *GridMap) ClearRect(x1, y1, x2, y2 int) []ObstacleChange {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var changes []ObstacleChange
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if g.InBounds(x, y) {
				changes = append(changes, g.SetObstacle(x, y, false))
			}
		}
	}
	return changes
}

// AddRandomObstacles scatters obstacles across the grid at the given
// density (0 to 1), drawing coordinates from rng. The caller supplies
// the source of randomness so tests remain deterministic.
func (g *GridMap) AddRandomObstacles(ratio float64, rng *rand.Rand) []ObstacleChange {
	total := g.width * g.height
	count := int(float64(total) * ratio)
	changes := make([]ObstacleChange, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Intn(g.width)
		y := rng.Intn(g.height)
		changes = append(changes, g.SetObstacle(x, y, true))
	}
	return changes
}

// Snapshot returns a read-only copy of the grid's cell classes, indexed
// Snapshot()[y][x].
func (g *GridMap) Snapshot() [][]CellClass {
	out := make([][]CellClass, g.height)
	for y := 0; y < g.height; y++ {
		row := make([]CellClass, g.width)
		for x := 0; x < g.width; x++ {
			row[x] = g.cells[g.index(x, y)].class
		}
		out[y] = row
	}
	return out
}

// neighborOffsets enumerates the eight directions in a fixed order: dx
// outer, dy inner, skipping (0,0). This order makes neighbor
// enumeration, and therefore path extraction tie-breaking,
// deterministic.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors8 returns the passable 8-connected neighbors of (x,y) in
// neighborOffsets order. A diagonal neighbor is rejected under
// CornerCuttingForbidden when either flanking orthogonal cell is an
// obstacle.
func (g *GridMap) Neighbors8(x, y int) []Cell {
	var out []Cell
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) || g.IsObstacle(nx, ny) {
			continue
		}
		if d[0] != 0 && d[1] != 0 && g.corner == CornerCuttingForbidden {
			if g.IsObstacle(x+d[0], y) || g.IsObstacle(x, y+d[1]) {
				continue
			}
		}
		out = append(out, Cell{X: nx, Y: ny})
	}
	return out
}

func assertNonNegative(m float64) {
	if m < 0 {
		panic("dstarlite: terrain multiplier must be non-negative")
	}
}
