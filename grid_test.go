package dstarlite_test

import (
	"math/rand"
	"testing"

	dstarlite "github.com/Burak1320demiroz/dstar-algorithm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridMap_NewIsAllPassable(t *testing.T) {
	g := dstarlite.NewGridMap(4, 3)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, g.IsObstacle(x, y))
		}
	}
}

func TestGridMap_SetObstacleIdempotent(t *testing.T) {
	g := dstarlite.NewGridMap(5, 5)
	g.SetObstacle(2, 2, true)
	g.SetObstacle(2, 2, true)
	assert.True(t, g.IsObstacle(2, 2))

	g.SetObstacle(2, 2, false)
	g.SetObstacle(2, 2, false)
	assert.False(t, g.IsObstacle(2, 2))
}

func TestGridMap_OutOfBoundsIsObstacle(t *testing.T) {
	g := dstarlite.NewGridMap(3, 3)
	assert.True(t, g.IsObstacle(-1, 0))
	assert.True(t, g.IsObstacle(3, 0))
	assert.True(t, g.IsObstacle(0, 3))
}

func TestGridMap_AddRectAndClearRect(t *testing.T) {
	g := dstarlite.NewGridMap(10, 10)
	changes := g.AddRect(2, 2, 4, 4)
	assert.Len(t, changes, 9)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			assert.True(t, g.IsObstacle(x, y))
		}
	}

	g.ClearRect(2, 2, 4, 4)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			assert.False(t, g.IsObstacle(x, y))
		}
	}
}

func TestGridMap_AddDisc(t *testing.T) {
	g := dstarlite.NewGridMap(11, 11)
	g.AddDisc(5, 5, 2)
	assert.True(t, g.IsObstacle(5, 5))
	assert.True(t, g.IsObstacle(5, 7))
	assert.False(t, g.IsObstacle(5, 8))
}

func TestGridMap_AddRoughRectSkipsObstacles(t *testing.T) {
	g := dstarlite.NewGridMap(5, 5)
	g.SetObstacle(1, 1, true)
	g.AddRoughRect(0, 0, 2, 2, 3.0)

	assert.True(t, g.IsObstacle(1, 1))
	assert.Equal(t, 3.0, g.TerrainCost(0, 0))
	assert.Equal(t, 1.0, g.TerrainCost(4, 4))
}

func TestGridMap_AddRoughRectRejectsNegativeMultiplier(t *testing.T) {
	g := dstarlite.NewGridMap(3, 3)
	assert.Panics(t, func() {
		g.AddRoughRect(0, 0, 1, 1, -1)
	})
}

func TestGridMap_Neighbors8Order(t *testing.T) {
	g := dstarlite.NewGridMap(3, 3)
	got := g.Neighbors8(1, 1)
	want := []dstarlite.Cell{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 2},
		{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
	assert.Equal(t, want, got)
}

func TestGridMap_CornerCutting(t *testing.T) {
	// Obstacles at (1,0) and (0,1) flank the diagonal step (0,0)->(1,1).
	g := dstarlite.NewGridMap(3, 3)
	g.SetObstacle(1, 0, true)
	g.SetObstacle(0, 1, true)

	relaxed := g.Neighbors8(0, 0)
	assert.Contains(t, relaxed, dstarlite.Cell{X: 1, Y: 1})

	g.SetCornerRule(dstarlite.CornerCuttingForbidden)
	strict := g.Neighbors8(0, 0)
	assert.NotContains(t, strict, dstarlite.Cell{X: 1, Y: 1})
}

func TestGridMap_AddRandomObstaclesDeterministic(t *testing.T) {
	g1 := dstarlite.NewGridMap(20, 20)
	g2 := dstarlite.NewGridMap(20, 20)
	c1 := g1.AddRandomObstacles(0.3, rand.New(rand.NewSource(7)))
	c2 := g2.AddRandomObstacles(0.3, rand.New(rand.NewSource(7)))
	require.Equal(t, len(c1), len(c2))
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestGridMap_Snapshot(t *testing.T) {
	g := dstarlite.NewGridMap(2, 2)
	g.SetObstacle(1, 0, true)
	snap := g.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, dstarlite.Obstacle, snap[0][1])
	assert.Equal(t, dstarlite.Passable, snap[0][0])
}
