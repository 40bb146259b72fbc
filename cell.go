// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dstarlite implements the D* Lite incremental pathfinding
// algorithm over an eight-connected grid.
//
// D* Lite is an incremental algorithm: once a path has been planned,
// later changes to the grid (obstacles appearing or disappearing,
// terrain cost changing) are repaired rather than replanned from
// scratch. The cost of a repair is bounded by the number of cells whose
// shortest-path estimate actually changes, not by the size of the grid.
//
//	Fast Replanning for Navigation in Unknown Terrain
//	Sven Koenig and Maxim Likhachev
//	http://pub1.willowgarage.com/~konolige/cs225b/dlite_tro05.pdf
package dstarlite

import "errors"

// Cell is an integer grid coordinate. Cells are compared by value, so
// they can be used directly as map keys without a custom Equals method.
type Cell struct {
	X, Y int
}

// CellClass is the terrain classification of a single grid cell.
type CellClass int

const (
	// Passable cells carry a terrain multiplier of 1.
	Passable CellClass = iota
	// Obstacle cells are impassable; their terrain cost is undefined.
	Obstacle
	// Rough cells are passable but carry a terrain multiplier m >= 1.
	Rough
)

// ObstacleChange is one entry of the change list passed to
// Planner.UpdateObstacles. NowBlocked documents the caller's intent but
// is never consulted by the planner: only the neighborhood of X,Y is
// re-examined. See DESIGN.md for the rationale.
type ObstacleChange struct {
	X, Y       int
	NowBlocked bool
}

// Sentinel errors returned by Planner methods.
var (
	// ErrInvalidEndpoint is returned when a start or goal cell is out
	// of bounds or classed as an obstacle.
	ErrInvalidEndpoint = errors.New("dstarlite: start or goal out of bounds or obstacle")

	// ErrStalePlannerUsage is returned when UpdateObstacles or
	// ReplanPath is called before the planner has been initialized
	// with PlanPath.
	ErrStalePlannerUsage = errors.New("dstarlite: UpdateObstacles/ReplanPath called before PlanPath")

	// ErrBudgetExhausted is returned when ComputeShortestPath stops
	// early because an expansion budget (see WithExpansionBudget) was
	// reached before the search converged. The planner remains in
	// StateDirty and a subsequent ReplanPath call resumes the repair.
	ErrBudgetExhausted = errors.New("dstarlite: expansion budget exhausted before convergence")
)
