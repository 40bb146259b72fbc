// Copyright 2014 The Azul3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dstarlite

import (
	"math"
	"time"
)

// PlannerState is a position in the planner's lifecycle:
//
//	Uninitialized -> Initialized -> Converged -> Dirty -> Converged -> ...
//
// PlanPath drives Uninitialized -> Converged (passing through
// Initialized). UpdateObstacles and ReplanPath drive
// Converged -> Dirty -> Converged.
type PlannerState int

const (
	StateUninitialized PlannerState = iota
	StateInitialized
	StateConverged
	StateDirty
)

func (s PlannerState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateConverged:
		return "converged"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Stats holds the counters exposed by Planner.Stats: the number of
// ComputeShortestPath expansions, the number of UpdateObstacles-driven
// repairs, and cumulative wall-clock time spent planning.
type Stats struct {
	NodesExpanded     int
	ReplanningCount   int
	TotalPlanningTime time.Duration
}

// Option configures a Planner at construction time.
type Option func(*Planner)

// WithExpansionBudget caps the number of priority-queue pops performed
// per ComputeShortestPath call. When the cap is hit before convergence,
// the affected call returns ErrBudgetExhausted and the planner remains
// in StateDirty; a subsequent ReplanPath call resumes the repair using
// the preserved g/rhs state. A budget of 0 (the default) means
// unbounded. This is an optional extension for bounding repair latency,
// not part of the base contract.
func WithExpansionBudget(n int) Option {
	return func(p *Planner) { p.budget = n }
}

// Planner is an incremental D* Lite search engine over a CostProvider.
// It maintains per-cell g/rhs state and an indexed priority queue across
// calls, repairing a previous solution rather than replanning from
// scratch when PlanPath has already converged once.
type Planner struct {
	cp          CostProvider
	start, goal Cell
	nodes       nodeStore
	queue       *priorityQueue
	km          float64
	budget      int
	state       PlannerState
	stats       Stats
}

// NewPlanner returns a Planner searching over cp. The planner is
// StateUninitialized until PlanPath is called.
func NewPlanner(cp CostProvider, opts ...Option) *Planner {
	p := &Planner{
		cp:    cp,
		queue: newPriorityQueue(),
		state: StateUninitialized,
	}
	p.nodes = newNodeStore(cp)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewGridPlanner is a convenience constructor wrapping grid in the
// default additive cost model with the given heuristic weight.
func NewGridPlanner(grid *GridMap, heuristicWeight float64, opts ...Option) *Planner {
	if heuristicWeight <= 0 {
		heuristicWeight = defaultHeuristicWeight
	}
	return NewPlanner(&gridCostProvider{grid: grid, weight: heuristicWeight}, opts...)
}

// Start returns the planner's current logical start cell.
func (p *Planner) Start() Cell { return p.start }

// Goal returns the planner's goal cell.
func (p *Planner) Goal() Cell { return p.goal }

// State reports the planner's current lifecycle state.
func (p *Planner) State() PlannerState { return p.state }

// Stats returns a snapshot of the planner's instrumentation counters.
func (p *Planner) Stats() Stats { return p.stats }

// float64Equals compares two g/rhs values for the purposes of the
// locally-consistent test g == rhs, tolerating the smallest possible
// rounding noise.
func float64Equals(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < math.SmallestNonzeroFloat64
}

func (p *Planner) calcKey(s Cell) pqKey {
	m := math.Min(p.nodes.getG(s), p.nodes.getRhs(s))
	return pqKey{K1: m + p.cp.Heuristic(s, p.start) + p.km, K2: m}
}

// updateVertex recomputes rhs(s) from scratch over s's passable
// neighbors (unless s is the goal), then fixes the cell's membership
// and key in the open set.
func (p *Planner) updateVertex(s Cell) {
	if s != p.goal {
		min := math.Inf(1)
		for _, n := range p.cp.Neighbors(s) {
			if c := p.cp.EdgeCost(s, n) + p.nodes.getG(n); c < min {
				min = c
			}
		}
		p.nodes.setRhs(s, min)
	}
	if p.queue.contains(s) {
		p.queue.remove(s)
	}
	if !float64Equals(p.nodes.getG(s), p.nodes.getRhs(s)) {
		p.queue.insert(s, p.calcKey(s))
	}
}

// computeShortestPath pops the open set in key order until the start
// cell is locally consistent and no key in the queue is smaller than the
// start's own key. Returns true if an expansion budget was configured
// and exhausted before convergence.
func (p *Planner) computeShortestPath() (budgetExhausted bool) {
	expansions := 0
	for !p.queue.isEmpty() &&
		(p.queue.topKey().compare(p.calcKey(p.start)) == -1 || !float64Equals(p.nodes.getRhs(p.start), p.nodes.getG(p.start))) {

		if p.budget > 0 && expansions >= p.budget {
			return true
		}

		u := p.queue.pop()
		expansions++
		p.stats.NodesExpanded++

		if p.nodes.getG(u) > p.nodes.getRhs(u) {
			p.nodes.setG(u, p.nodes.getRhs(u))
			for _, n := range p.cp.Neighbors(u) {
				p.updateVertex(n)
			}
		} else {
			p.nodes.setG(u, math.Inf(1))
			for _, n := range p.cp.Neighbors(u) {
				p.updateVertex(n)
			}
			p.updateVertex(u)
		}
	}
	return false
}

// extractPath performs a greedy descent from start to goal by
// minimizing edgeCost(current,n)+g(n), ties broken by the fixed
// Neighbors enumeration order.
func (p *Planner) extractPath() []Cell {
	if math.IsInf(p.nodes.getG(p.start), 1) {
		return nil
	}
	path := []Cell{p.start}
	current := p.start
	for current != p.goal {
		neighbors := p.cp.Neighbors(current)
		best := current
		bestCost := math.Inf(1)
		found := false
		for _, n := range neighbors {
			c := p.cp.EdgeCost(current, n) + p.nodes.getG(n)
			if c < bestCost {
				bestCost = c
				best = n
				found = true
			}
		}
		if !found || math.IsInf(bestCost, 1) {
			return nil
		}
		current = best
		path = append(path, current)
	}
	return path
}

// PlanPath reinitializes planner state for (start,goal), runs
// ComputeShortestPath, and extracts and returns the resulting path.
// GridMap mutations accumulated before this call are NOT discarded;
// only g/rhs/the open set are reset. Returns ErrInvalidEndpoint if
// either cell is out of bounds or an obstacle.
func (p *Planner) PlanPath(start, goal Cell) ([]Cell, error) {
	if !p.cp.InBounds(start) || p.cp.IsObstacle(start) || !p.cp.InBounds(goal) || p.cp.IsObstacle(goal) {
		return nil, ErrInvalidEndpoint
	}

	p.start = start
	p.goal = goal
	p.nodes.reset()
	p.queue.clear()
	p.state = StateInitialized
	p.nodes.setRhs(goal, 0)
	p.queue.insert(goal, p.calcKey(goal))

	if start == goal {
		p.nodes.setG(start, 0)
		p.state = StateConverged
		return []Cell{start}, nil
	}

	t0 := time.Now()
	exhausted := p.computeShortestPath()
	p.stats.TotalPlanningTime += time.Since(t0)
	if exhausted {
		p.state = StateDirty
		return p.extractPath(), ErrBudgetExhausted
	}
	p.state = StateConverged
	return p.extractPath(), nil
}

// UpdateObstacles applies a batch of cost-change notifications and
// repairs the previous solution in place: it does NOT return a path
// (call ReplanPath for that). For each change, the changed cell and
// every one of its passable neighbors are passed to updateVertex; the
// NowBlocked flag is not consulted (see DESIGN.md). Out-of-bounds
// coordinates are silently ignored. Returns ErrStalePlannerUsage if
// called before PlanPath.
func (p *Planner) UpdateObstacles(changes []ObstacleChange) error {
	if p.state == StateUninitialized {
		return ErrStalePlannerUsage
	}
	if len(changes) == 0 {
		return nil
	}

	p.stats.ReplanningCount++
	t0 := time.Now()

	for _, ch := range changes {
		c := Cell{X: ch.X, Y: ch.Y}
		if !p.cp.InBounds(c) {
			continue
		}
		for _, n := range p.cp.Neighbors(c) {
			p.updateVertex(n)
		}
		p.updateVertex(c)
	}

	exhausted := p.computeShortestPath()
	p.stats.TotalPlanningTime += time.Since(t0)
	if exhausted {
		p.state = StateDirty
		return ErrBudgetExhausted
	}
	p.state = StateConverged
	return nil
}

// ReplanPath optionally moves the logical start (bumping the km key
// modifier), runs ComputeShortestPath, and extracts and returns the
// resulting path. Returns ErrStalePlannerUsage if called before
// PlanPath.
func (p *Planner) ReplanPath(newStart *Cell) ([]Cell, error) {
	if p.state == StateUninitialized {
		return nil, ErrStalePlannerUsage
	}
	if newStart != nil && *newStart != p.start {
		old := p.start
		p.km += p.cp.Heuristic(old, *newStart)
		p.start = *newStart
	}

	t0 := time.Now()
	exhausted := p.computeShortestPath()
	p.stats.TotalPlanningTime += time.Since(t0)
	if exhausted {
		p.state = StateDirty
		return p.extractPath(), ErrBudgetExhausted
	}
	p.state = StateConverged
	return p.extractPath(), nil
}
