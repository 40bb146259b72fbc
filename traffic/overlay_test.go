package traffic_test

import (
	"testing"

	dstarlite "github.com/Burak1320demiroz/dstar-algorithm"
	"github.com/Burak1320demiroz/dstar-algorithm/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlay_IsObstacleOutsideRoadOrBuilding(t *testing.T) {
	o := traffic.NewOverlay(10, 10)
	// No road painted anywhere yet: every cell is an obstacle.
	assert.True(t, o.IsObstacle(dstarlite.Cell{X: 0, Y: 0}))

	o.SetRoad(0, 0, 9, 9, traffic.Street, 50)
	assert.False(t, o.IsObstacle(dstarlite.Cell{X: 5, Y: 5}))

	o.SetBuilding(5, 5, 5, 5)
	assert.True(t, o.IsObstacle(dstarlite.Cell{X: 5, Y: 5}))
}

func TestOverlay_EdgeCostScalesWithRoadType(t *testing.T) {
	o := traffic.NewOverlay(5, 5)
	o.SetRoad(0, 0, 4, 0, traffic.Highway, 100)
	o.SetRoad(0, 1, 4, 1, traffic.NarrowStreet, 100)

	highwayCost := o.EdgeCost(dstarlite.Cell{X: 0, Y: 0}, dstarlite.Cell{X: 1, Y: 0})
	narrowCost := o.EdgeCost(dstarlite.Cell{X: 0, Y: 1}, dstarlite.Cell{X: 1, Y: 1})
	assert.Greater(t, narrowCost, highwayCost)
}

func TestOverlay_EdgeCostInfiniteIntoObstacle(t *testing.T) {
	o := traffic.NewOverlay(3, 3)
	o.SetRoad(0, 0, 2, 2, traffic.Street, 50)
	o.SetBuilding(1, 1, 1, 1)

	cost := o.EdgeCost(dstarlite.Cell{X: 0, Y: 0}, dstarlite.Cell{X: 1, Y: 1})
	assert.True(t, cost > 1e300)
}

func TestOverlay_SignalProximityPenalizesRed(t *testing.T) {
	o := traffic.NewOverlay(10, 10)
	o.SetRoad(0, 0, 9, 9, traffic.Street, 50)
	light := o.AddSignal(5, 5)

	before := o.EdgeCost(dstarlite.Cell{X: 4, Y: 5}, dstarlite.Cell{X: 5, Y: 5})
	light.State = traffic.Red
	after := o.EdgeCost(dstarlite.Cell{X: 4, Y: 5}, dstarlite.Cell{X: 5, Y: 5})
	assert.Greater(t, after, before)
}

func TestTrafficLight_CyclesGreenYellowRed(t *testing.T) {
	o := traffic.NewOverlay(3, 3)
	o.SetRoad(0, 0, 2, 2, traffic.Street, 50)
	light := o.AddSignal(1, 1)
	require.Equal(t, traffic.Green, light.State)

	o.Tick(30.0) // exhausts the green phase
	assert.Equal(t, traffic.Yellow, light.State)

	o.Tick(3.0) // exhausts yellow
	assert.Equal(t, traffic.Red, light.State)

	o.Tick(25.0) // exhausts red
	assert.Equal(t, traffic.Green, light.State)
}

func TestOverlay_TickReportsChangesAboveThreshold(t *testing.T) {
	o := traffic.NewOverlay(10, 10)
	o.SetRoad(0, 0, 9, 9, traffic.Street, 50)
	o.ChangeThreshold = 0.01
	o.AddVehicle(traffic.MovingVehicle{X: 5, Y: 5, VX: 0, VY: 0})

	// Prime lastCost with the vehicle already present.
	o.Tick(0)
	// A second vehicle arriving nearby should raise local density enough
	// to clear the (small) threshold.
	o.AddVehicle(traffic.MovingVehicle{X: 5, Y: 5, VX: 0, VY: 0})
	changes := o.Tick(0)
	assert.NotEmpty(t, changes)
	for _, c := range changes {
		assert.False(t, c.NowBlocked)
	}
}

func TestOverlay_HeuristicUsesLocalDensity(t *testing.T) {
	o := traffic.NewOverlay(10, 10)
	o.SetRoad(0, 0, 9, 9, traffic.Street, 50)
	a, b := dstarlite.Cell{X: 0, Y: 0}, dstarlite.Cell{X: 5, Y: 5}

	plain := o.Heuristic(a, b)
	o.AddVehicle(traffic.MovingVehicle{X: 0, Y: 0, VX: 0, VY: 0})
	o.Tick(0)
	congested := o.Heuristic(a, b)
	assert.Greater(t, congested, plain)
}

func TestOverlay_NeighborsExcludeObstacles(t *testing.T) {
	o := traffic.NewOverlay(3, 3)
	o.SetRoad(0, 0, 2, 2, traffic.Street, 50)
	o.SetBuilding(1, 0, 1, 0)

	ns := o.Neighbors(dstarlite.Cell{X: 0, Y: 0})
	assert.NotContains(t, ns, dstarlite.Cell{X: 1, Y: 0})
}

func TestPlanner_UsesOverlayAsCostProvider(t *testing.T) {
	o := traffic.NewOverlay(10, 10)
	o.SetRoad(0, 0, 9, 9, traffic.Highway, 100)

	p := dstarlite.NewPlanner(o)
	path, err := p.PlanPath(dstarlite.Cell{X: 0, Y: 0}, dstarlite.Cell{X: 9, Y: 9})
	require.NoError(t, err)
	assert.Equal(t, dstarlite.Cell{X: 0, Y: 0}, path[0])
	assert.Equal(t, dstarlite.Cell{X: 9, Y: 9}, path[len(path)-1])
}
