// Package traffic implements a dynamic, multiplicative cost provider
// over a layered road network: road type, vehicle congestion, signal
// phase, and speed limit all compose into a single per-cell traversal
// cost. It implements dstarlite.CostProvider directly, so it plugs into
// dstarlite.NewPlanner just as the GridMap adapter built by
// dstarlite.NewGridPlanner does; the
// planner itself needs no knowledge of the traffic domain (see
// DESIGN.md's "one interface, two implementations" note).
package traffic

import (
	"math"

	"github.com/Burak1320demiroz/dstar-algorithm"
)

// RoadType classifies a road cell and selects its base traversal cost.
type RoadType int

const (
	// NoRoad marks a cell that carries no road layer at all.
	NoRoad RoadType = iota
	Highway
	MainStreet
	Street
	NarrowStreet
	ParkingLot
	Intersection
	Roundabout
)

// baseCost is the per-road-type cost multiplier.
var baseCost = map[RoadType]float64{
	Highway:      1.0,
	MainStreet:   1.2,
	Street:       1.5,
	NarrowStreet: 2.0,
	ParkingLot:   3.0,
	Intersection: 2.5,
	Roundabout:   2.0,
}

// SignalState is the phase of a traffic light.
type SignalState int

const (
	Green SignalState = iota
	Yellow
	Red
)

// Signal phase durations, seconds: green 30s -> yellow 3s -> red 25s
// -> green ...
const (
	greenDuration  = 30.0
	yellowDuration = 3.0
	redDuration    = 25.0
)

// TrafficLight is a signal at a fixed cell cycling through Green,
// Yellow, Red.
type TrafficLight struct {
	X, Y    int
	State   SignalState
	elapsed float64
}

func (l *TrafficLight) tick(dt float64) {
	l.elapsed += dt
	limit := greenDuration
	switch l.State {
	case Yellow:
		limit = yellowDuration
	case Red:
		limit = redDuration
	}
	if l.elapsed < limit {
		return
	}
	l.elapsed = 0
	switch l.State {
	case Green:
		l.State = Yellow
	case Yellow:
		l.State = Red
	case Red:
		l.State = Green
	}
}

// MovingVehicle is a simple point-mass vehicle contributing to the
// local congestion ("density") field.
type MovingVehicle struct {
	X, Y   float64
	VX, VY float64
}

// Overlay is a dynamic, layered traffic cost provider over a W x H
// grid. Zero value is not usable; build one with NewOverlay.
type Overlay struct {
	width, height int

	road     []RoadType
	building []bool
	speed    []float64 // km/h speed limit per cell

	density []float64 // congestion field, recomputed by Tick

	lights   []*TrafficLight
	vehicles []MovingVehicle

	lastCost []float64

	// ChangeThreshold is the minimum |delta| in per-cell dynamic cost
	// that triggers a change record from Tick. The reference
	// implementation hard-codes 0.5; it is exposed here as
	// configuration since the right value is domain-specific. A lower
	// threshold tracks conditions more tightly at the cost of more
	// frequent repair work; a higher one tolerates stale costs longer
	// between repairs.
	ChangeThreshold float64

	// HeuristicWeight scales the blended heuristic; defaults to 1.2,
	// the reference traffic-aware weight.
	HeuristicWeight float64
}

// NewOverlay returns an Overlay of the given dimensions with no roads
// or buildings; callers populate layers with SetRoad/SetBuilding/
// SetSpeedLimit or by loading a Scenario.
func NewOverlay(width, height int) *Overlay {
	n := width * height
	o := &Overlay{
		width:           width,
		height:          height,
		road:            make([]RoadType, n),
		building:        make([]bool, n),
		speed:           make([]float64, n),
		density:         make([]float64, n),
		lastCost:        make([]float64, n),
		ChangeThreshold: 0.5,
		HeuristicWeight: 1.2,
	}
	for i := range o.speed {
		o.speed[i] = 50
	}
	return o
}

func (o *Overlay) idx(x, y int) int { return y*o.width + x }

// Dimensions reports the overlay's width and height, letting Planner
// preallocate a dense node-state table.
func (o *Overlay) Dimensions() (int, int) { return o.width, o.height }

// InBounds reports whether c lies within the overlay.
func (o *Overlay) InBounds(c dstarlite.Cell) bool {
	return c.X >= 0 && c.X < o.width && c.Y >= 0 && c.Y < o.height
}

// IsObstacle reports whether c is a building cell, or not on any road
// layer at all.
func (o *Overlay) IsObstacle(c dstarlite.Cell) bool {
	if !o.InBounds(c) {
		return true
	}
	i := o.idx(c.X, c.Y)
	return o.building[i] || o.road[i] == NoRoad
}

// SetRoad paints a rectangle of cells with the given road type and
// speed limit (km/h).
func (o *Overlay) SetRoad(x1, y1, x2, y2 int, rt RoadType, speedLimit float64) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if !o.InBounds(dstarlite.Cell{X: x, Y: y}) {
				continue
			}
			i := o.idx(x, y)
			o.road[i] = rt
			o.speed[i] = speedLimit
		}
	}
}

// SetBuilding marks a rectangle of cells as a building (impassable
// regardless of any road layer underneath).
func (o *Overlay) SetBuilding(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if o.InBounds(dstarlite.Cell{X: x, Y: y}) {
				o.building[o.idx(x, y)] = true
			}
		}
	}
}

// AddSignal places a traffic light at (x,y) starting in Green.
func (o *Overlay) AddSignal(x, y int) *TrafficLight {
	l := &TrafficLight{X: x, Y: y, State: Green}
	o.lights = append(o.lights, l)
	return l
}

// AddVehicle introduces a moving vehicle contributing to the congestion
// field.
func (o *Overlay) AddVehicle(v MovingVehicle) {
	o.vehicles = append(o.vehicles, v)
}

// neighborOffsets mirrors the order used by dstarlite.GridMap.Neighbors8
// so path extraction tie-breaking is consistent across providers.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the passable 8-connected road neighbors of c.
func (o *Overlay) Neighbors(c dstarlite.Cell) []dstarlite.Cell {
	var out []dstarlite.Cell
	for _, d := range neighborOffsets {
		n := dstarlite.Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if !o.IsObstacle(n) {
			out = append(out, n)
		}
	}
	return out
}

// EdgeCost returns the multiplicative dynamic cost of moving from a to
// neighboring cell b: base(roadType) * density * signalProximity *
// inverseSpeedLimit, scaled by the step's Euclidean base length.
func (o *Overlay) EdgeCost(a, b dstarlite.Cell) float64 {
	if o.IsObstacle(b) {
		return math.Inf(1)
	}
	dist := 1.0
	if a.X != b.X && a.Y != b.Y {
		dist = math.Sqrt2
	}
	return dist * o.dynamicCost(b.X, b.Y)
}

// dynamicCost computes the instantaneous multiplicative cost at (x,y).
func (o *Overlay) dynamicCost(x, y int) float64 {
	i := o.idx(x, y)
	base, ok := baseCost[o.road[i]]
	if !ok {
		base = 2.0
	}
	densityFactor := 1 + 2*o.density[i]
	signalFactor := o.signalProximityFactor(x, y)
	speedFactor := 50.0 / math.Max(o.speed[i], 10.0)
	return base * densityFactor * signalFactor * speedFactor
}

// signalProximityFactor returns the red/yellow penalty for any signal
// within Manhattan radius 3 of (x,y); 1.0 if none is in range.
func (o *Overlay) signalProximityFactor(x, y int) float64 {
	factor := 1.0
	for _, l := range o.lights {
		d := abs(l.X-x) + abs(l.Y-y)
		if d > 3 {
			continue
		}
		switch l.State {
		case Red:
			if 5.0 > factor {
				factor = 5.0
			}
		case Yellow:
			if 2.0 > factor {
				factor = 2.0
			}
		}
	}
	return factor
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Heuristic blends Manhattan and Euclidean distance, scaled by a's
// local congestion, matching the traffic-aware reference's hybrid
// heuristic: weight * (0.7*manhattan + 0.3*euclidean) *
// (1 + 0.5*density(a)).
func (o *Overlay) Heuristic(a, b dstarlite.Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	manhattan := dx + dy
	euclidean := math.Sqrt(dx*dx + dy*dy)

	trafficFactor := 1.0
	if o.InBounds(a) {
		trafficFactor = 1 + o.density[o.idx(a.X, a.Y)]*0.5
	}
	return o.HeuristicWeight * (0.7*manhattan + 0.3*euclidean) * trafficFactor
}

// Tick advances moving vehicles and signal phases by dt seconds,
// recomputes the congestion field, and returns the set of road cells
// whose dynamic cost moved by more than ChangeThreshold since the last
// Tick — feed these directly to Planner.UpdateObstacles. The NowBlocked
// field of each returned change is always false: traffic dynamics never
// turn a road cell into a building.
func (o *Overlay) Tick(dt float64) []dstarlite.ObstacleChange {
	for _, l := range o.lights {
		l.tick(dt)
	}
	o.advanceVehicles(dt)
	o.recomputeDensity()

	var changes []dstarlite.ObstacleChange
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			i := o.idx(x, y)
			if o.road[i] == NoRoad {
				continue
			}
			cost := o.dynamicCost(x, y)
			if math.Abs(cost-o.lastCost[i]) > o.ChangeThreshold {
				changes = append(changes, dstarlite.ObstacleChange{X: x, Y: y, NowBlocked: false})
			}
			o.lastCost[i] = cost
		}
	}
	return changes
}

// advanceVehicles moves each vehicle along its velocity, bouncing off
// non-road cells, and drops any vehicle that leaves the grid.
func (o *Overlay) advanceVehicles(dt float64) {
	live := o.vehicles[:0]
	for _, v := range o.vehicles {
		nx, ny := v.X+v.VX*dt, v.Y+v.VY*dt
		if nx < 0 || nx >= float64(o.width) || ny < 0 || ny >= float64(o.height) {
			continue
		}
		if o.IsObstacle(dstarlite.Cell{X: int(nx), Y: int(ny)}) {
			v.VX, v.VY = -v.VX*0.5, -v.VY*0.5
		} else {
			v.X, v.Y = nx, ny
		}
		live = append(live, v)
	}
	o.vehicles = live
}

// recomputeDensity rebuilds the congestion field from current vehicle
// positions, spreading each vehicle's weight over a radius-2
// neighborhood with linear falloff, matching the reference
// implementation's density update.
func (o *Overlay) recomputeDensity() {
	for i := range o.density {
		o.density[i] = 0
	}
	for _, v := range o.vehicles {
		cx, cy := int(v.X), int(v.Y)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := cx+dx, cy+dy
				if nx < 0 || nx >= o.width || ny < 0 || ny >= o.height {
					continue
				}
				dist := math.Sqrt(float64(dx*dx + dy*dy))
				if dist > 2 {
					continue
				}
				o.density[o.idx(nx, ny)] += 1 - dist/2
			}
		}
	}
}
