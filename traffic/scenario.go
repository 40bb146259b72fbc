package traffic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// roadTypeNames maps the YAML road type names to RoadType with a small
// name->const lookup table rather than a yaml.Unmarshaler per type.
var roadTypeNames = map[string]RoadType{
	"highway":      Highway,
	"main_street":  MainStreet,
	"street":       Street,
	"narrow":       NarrowStreet,
	"parking":      ParkingLot,
	"intersection": Intersection,
	"roundabout":   Roundabout,
}

// RectSpec describes an axis-aligned inclusive rectangle.
type RectSpec struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// RoadSpec paints a rectangle of road with the given type and speed
// limit.
type RoadSpec struct {
	RectSpec   `yaml:",inline"`
	Type       string  `yaml:"type"`
	SpeedLimit float64 `yaml:"speed_limit"`
}

// SignalSpec places one traffic light.
type SignalSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// VehicleSpec seeds one moving vehicle.
type VehicleSpec struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

// Scenario is a declarative description of a traffic Overlay, loaded
// from a plain struct with yaml tags and a single Load function, no
// schema framework.
type Scenario struct {
	Width           int          `yaml:"width"`
	Height          int          `yaml:"height"`
	HeuristicWeight float64      `yaml:"heuristic_weight"`
	ChangeThreshold float64      `yaml:"change_threshold"`
	Roads           []RoadSpec   `yaml:"roads"`
	Buildings       []RectSpec   `yaml:"buildings"`
	Signals         []SignalSpec `yaml:"signals"`
	Vehicles        []VehicleSpec `yaml:"vehicles"`
}

// LoadScenario reads and parses a YAML scenario document from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("traffic: read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("traffic: parse scenario: %w", err)
	}
	return &s, nil
}

// Build constructs an Overlay from the scenario description.
func (s *Scenario) Build() (*Overlay, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("traffic: scenario width/height must be positive")
	}
	o := NewOverlay(s.Width, s.Height)
	if s.HeuristicWeight > 0 {
		o.HeuristicWeight = s.HeuristicWeight
	}
	if s.ChangeThreshold > 0 {
		o.ChangeThreshold = s.ChangeThreshold
	}
	for _, r := range s.Roads {
		rt, ok := roadTypeNames[r.Type]
		if !ok {
			return nil, fmt.Errorf("traffic: unknown road type %q", r.Type)
		}
		speed := r.SpeedLimit
		if speed <= 0 {
			speed = 50
		}
		o.SetRoad(r.X1, r.Y1, r.X2, r.Y2, rt, speed)
	}
	for _, b := range s.Buildings {
		o.SetBuilding(b.X1, b.Y1, b.X2, b.Y2)
	}
	for _, sg := range s.Signals {
		o.AddSignal(sg.X, sg.Y)
	}
	for _, v := range s.Vehicles {
		o.AddVehicle(MovingVehicle{X: v.X, Y: v.Y, VX: v.VX, VY: v.VY})
	}
	return o, nil
}
