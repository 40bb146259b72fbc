package traffic_test

import (
	"os"
	"path/filepath"
	"testing"

	dstarlite "github.com/Burak1320demiroz/dstar-algorithm"
	"github.com/Burak1320demiroz/dstar-algorithm/traffic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
width: 10
height: 10
heuristic_weight: 1.3
change_threshold: 0.4
roads:
  - x1: 0
    y1: 0
    x2: 9
    y2: 0
    type: highway
    speed_limit: 90
  - x1: 0
    y1: 1
    x2: 9
    y2: 9
    type: street
    speed_limit: 50
buildings:
  - x1: 3
    y1: 3
    x2: 4
    y2: 4
signals:
  - x: 2
    y: 0
vehicles:
  - x: 1.0
    y: 0.0
    vx: 1.0
    vy: 0.0
`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadScenario_ParsesFields(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	s, err := traffic.LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 10, s.Height)
	assert.Equal(t, 1.3, s.HeuristicWeight)
	require.Len(t, s.Roads, 2)
	assert.Equal(t, "highway", s.Roads[0].Type)
	require.Len(t, s.Vehicles, 1)
	assert.Equal(t, 1.0, s.Vehicles[0].X)
}

func TestScenario_Build(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	s, err := traffic.LoadScenario(path)
	require.NoError(t, err)

	o, err := s.Build()
	require.NoError(t, err)

	assert.False(t, o.IsObstacle(dstarlite.Cell{X: 0, Y: 0}))
	assert.True(t, o.IsObstacle(dstarlite.Cell{X: 3, Y: 3}))
	assert.Equal(t, 1.3, o.HeuristicWeight)
	assert.Equal(t, 0.4, o.ChangeThreshold)
}

func TestScenario_BuildRejectsUnknownRoadType(t *testing.T) {
	path := writeScenario(t, `
width: 3
height: 3
roads:
  - x1: 0
    y1: 0
    x2: 2
    y2: 2
    type: dirt_track
`)
	s, err := traffic.LoadScenario(path)
	require.NoError(t, err)

	_, err = s.Build()
	assert.Error(t, err)
}

func TestScenario_BuildRejectsNonPositiveDimensions(t *testing.T) {
	s := &traffic.Scenario{Width: 0, Height: 5}
	_, err := s.Build()
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := traffic.LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
