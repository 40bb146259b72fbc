// Package vehicle implements a kinematic bicycle model driven by a
// pure-pursuit controller over a planned path. It is an external
// collaborator, not part of the core: it consumes the []dstarlite.Cell
// paths dstarlite.Planner produces but is never called by the planner
// or by dstarlite.GridMap.
package vehicle

import (
	"math"

	"github.com/Burak1320demiroz/dstar-algorithm"
)

// State is the vehicle's pose and speed.
type State struct {
	X, Y     float64 // position
	Theta    float64 // heading, radians
	V        float64 // speed
	Steering float64 // current steering angle, radians
}

// Vehicle is a kinematic bicycle model: wheelbase L, bounded speed and
// steering angle, bounded acceleration.
type Vehicle struct {
	Wheelbase          float64
	MaxSpeed           float64
	MaxSteeringAngle   float64
	MaxAcceleration    float64
	LookaheadDistance  float64

	State      State
	pathIndex  int
}

// New returns a Vehicle with the given physical limits, at rest at the
// origin.
func New(wheelbase, maxSpeed, maxSteeringAngle, maxAcceleration float64) *Vehicle {
	return &Vehicle{
		Wheelbase:         wheelbase,
		MaxSpeed:          maxSpeed,
		MaxSteeringAngle:  maxSteeringAngle,
		MaxAcceleration:   maxAcceleration,
		LookaheadDistance: 5.0,
	}
}

// Step integrates the bicycle model forward by dt seconds under the
// given acceleration and steering angle commands, both clamped to the
// vehicle's limits.
func (v *Vehicle) Step(dt, acceleration, steeringAngle float64) {
	steeringAngle = clamp(steeringAngle, -v.MaxSteeringAngle, v.MaxSteeringAngle)
	acceleration = clamp(acceleration, -v.MaxAcceleration, v.MaxAcceleration)

	newV := clamp(v.State.V+acceleration*dt, 0, v.MaxSpeed)

	// beta is the slip angle of the bicycle model's center of mass.
	beta := math.Atan(0.5 * math.Tan(steeringAngle))

	newX := v.State.X + newV*math.Cos(v.State.Theta+beta)*dt
	newY := v.State.Y + newV*math.Sin(v.State.Theta+beta)*dt
	newTheta := v.State.Theta + (newV/v.Wheelbase)*math.Sin(beta)*dt
	newTheta = math.Atan2(math.Sin(newTheta), math.Cos(newTheta))

	v.State = State{X: newX, Y: newY, Theta: newTheta, V: newV, Steering: steeringAngle}
}

// PurePursuit computes the acceleration and steering commands that
// drive the vehicle toward targetSpeed along path, tracking the point
// LookaheadDistance ahead of the vehicle's current position. Returns
// (0,0) for an empty path, or when the vehicle's waypoint index already
// lies past the end of path; once the final waypoint is the lookahead
// point, it keeps steering toward that waypoint.
func (v *Vehicle) PurePursuit(path []dstarlite.Cell, targetSpeed float64) (acceleration, steering float64) {
	if len(path) == 0 || v.pathIndex >= len(path) {
		return 0, 0
	}

	lookahead, ok := v.findLookaheadPoint(path)
	if !ok {
		return 0, 0
	}

	dx := lookahead.X - v.State.X
	dy := lookahead.Y - v.State.Y
	targetAngle := math.Atan2(dy, dx)
	angleError := normalizeAngle(targetAngle - v.State.Theta)

	distance := math.Hypot(dx, dy)
	if distance < 1e-6 {
		distance = 1e-6
	}
	steering = math.Atan(2 * v.Wheelbase * math.Sin(angleError) / distance)

	speedError := targetSpeed - v.State.V
	acceleration = clamp(speedError, -v.MaxAcceleration, v.MaxAcceleration)

	return acceleration, steering
}

// findLookaheadPoint advances pathIndex past any waypoints closer than
// LookaheadDistance to the vehicle (regardless of heading) and returns
// the first point at least that far away, falling back to the final
// waypoint.
func (v *Vehicle) findLookaheadPoint(path []dstarlite.Cell) (point struct{ X, Y float64 }, ok bool) {
	for v.pathIndex < len(path)-1 {
		c := path[v.pathIndex]
		d := math.Hypot(float64(c.X)-v.State.X, float64(c.Y)-v.State.Y)
		if d >= v.LookaheadDistance {
			break
		}
		v.pathIndex++
	}
	c := path[v.pathIndex]
	return struct{ X, Y float64 }{X: float64(c.X), Y: float64(c.Y)}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
