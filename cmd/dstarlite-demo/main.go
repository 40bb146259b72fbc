// Command dstarlite-demo drives the dstarlite planner end to end over
// either a plain GridMap or a traffic.Overlay scenario, without any
// rendering: a deterministic flag-based CLI boundary logging progress
// with log/slog.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"

	dstarlite "github.com/Burak1320demiroz/dstar-algorithm"
	"github.com/Burak1320demiroz/dstar-algorithm/traffic"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dstarlite-demo <grid|traffic> [flags]")
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "grid":
		err = runGrid(logger, os.Args[2:])
	case "traffic":
		err = runTraffic(logger, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q: want grid or traffic\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func runGrid(logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ContinueOnError)
	width := fs.Int("width", 20, "grid width")
	height := fs.Int("height", 20, "grid height")
	startFlag := fs.String("start", "0,0", "start cell, x,y")
	goalFlag := fs.String("goal", "19,19", "goal cell, x,y")
	obstacleRatio := fs.Float64("obstacle-ratio", 0.15, "fraction of cells to scatter as obstacles")
	seed := fs.Int64("seed", 1, "random seed for obstacle scattering")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parseCell(*startFlag)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	goal, err := parseCell(*goalFlag)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	grid := dstarlite.NewGridMap(*width, *height)
	rng := rand.New(rand.NewSource(*seed))
	grid.AddRandomObstacles(*obstacleRatio, rng)
	grid.SetObstacle(start.X, start.Y, false)
	grid.SetObstacle(goal.X, goal.Y, false)

	planner := dstarlite.NewGridPlanner(grid, 1.0)
	path, err := planner.PlanPath(start, goal)
	if err != nil {
		return err
	}

	logger.Info("planned", "path_length", len(path), "stats", planner.Stats())
	printGrid(grid, path)
	return nil
}

func runTraffic(logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("traffic", flag.ContinueOnError)
	scenarioPath := fs.String("scenario", "", "path to a traffic scenario YAML file")
	startFlag := fs.String("start", "0,0", "start cell, x,y")
	goalFlag := fs.String("goal", "0,0", "goal cell, x,y")
	ticks := fs.Int("ticks", 10, "number of Tick(1s) iterations to simulate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioPath == "" {
		return errors.New("traffic: -scenario is required")
	}

	scenario, err := traffic.LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}
	overlay, err := scenario.Build()
	if err != nil {
		return err
	}

	start, err := parseCell(*startFlag)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	goal, err := parseCell(*goalFlag)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	planner := dstarlite.NewPlanner(overlay)
	path, err := planner.PlanPath(start, goal)
	if err != nil {
		return err
	}
	logger.Info("initial plan", "path_length", len(path))

	for i := 0; i < *ticks; i++ {
		changes := overlay.Tick(1.0)
		if len(changes) == 0 {
			continue
		}
		if err := planner.UpdateObstacles(changes); err != nil && !errors.Is(err, dstarlite.ErrBudgetExhausted) {
			return err
		}
		path, err = planner.ReplanPath(nil)
		if err != nil && !errors.Is(err, dstarlite.ErrBudgetExhausted) {
			return err
		}
		metrics := overlay.Analyze(path)
		logger.Info("tick", "n", i, "changed_cells", len(changes), "path_length", len(path), "safety_index", metrics.SafetyIndex)
	}

	logger.Info("final stats", "stats", planner.Stats())
	return nil
}

func parseCell(s string) (dstarlite.Cell, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return dstarlite.Cell{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return dstarlite.Cell{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return dstarlite.Cell{}, err
	}
	return dstarlite.Cell{X: x, Y: y}, nil
}

// printGrid renders an ASCII map of grid with path marked, for quick
// visual sanity-checking without any rendering dependency.
func printGrid(grid *dstarlite.GridMap, path []dstarlite.Cell) {
	onPath := make(map[dstarlite.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	snap := grid.Snapshot()
	var b strings.Builder
	for y, row := range snap {
		for x, class := range row {
			c := dstarlite.Cell{X: x, Y: y}
			switch {
			case onPath[c]:
				b.WriteByte('*')
			case class == dstarlite.Obstacle:
				b.WriteByte('#')
			case class == dstarlite.Rough:
				b.WriteByte('~')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
