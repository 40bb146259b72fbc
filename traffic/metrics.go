package traffic

import "github.com/Burak1320demiroz/dstar-algorithm"

// RouteMetrics summarizes how a planned path fares against the
// overlay's current traffic conditions, trimmed to the fields that
// don't require a visualization layer.
type RouteMetrics struct {
	AverageCost    float64
	AverageSpeed   float64
	SafetyIndex    float64
	HighwayRatio   float64
	NarrowRatio    float64
}

// roadSafety is the per-road-type safety weighting used in the safety
// index below.
var roadSafety = map[RoadType]float64{
	Highway:      0.9,
	MainStreet:   0.8,
	Street:       0.7,
	NarrowStreet: 0.5,
	ParkingLot:   0.4,
	Intersection: 0.3,
}

// Analyze reports RouteMetrics for path over the overlay's current
// state. An empty path yields a zero-value RouteMetrics.
func (o *Overlay) Analyze(path []dstarlite.Cell) RouteMetrics {
	if len(path) == 0 {
		return RouteMetrics{}
	}

	var (
		totalCost, totalSpeed, totalSafety float64
		highway, narrow                    int
	)

	for _, c := range path {
		if !o.InBounds(c) {
			continue
		}
		i := o.idx(c.X, c.Y)
		cost := o.dynamicCost(c.X, c.Y)
		totalCost += cost
		totalSpeed += o.speed[i]

		trafficFactor := 1 - min1(o.density[i])
		speedFactor := max0(1 - abs64(o.speed[i]-50)/50)
		safety, ok := roadSafety[o.road[i]]
		if !ok {
			safety = 0.5
		}
		totalSafety += trafficFactor*0.4 + speedFactor*0.3 + safety*0.3

		switch o.road[i] {
		case Highway:
			highway++
		case NarrowStreet:
			narrow++
		}
	}

	n := float64(len(path))
	return RouteMetrics{
		AverageCost:  totalCost / n,
		AverageSpeed: totalSpeed / n,
		SafetyIndex:  totalSafety / n,
		HighwayRatio: float64(highway) / n,
		NarrowRatio:  float64(narrow) / n,
	}
}

func min1(v float64) float64 {
	if v < 1 {
		return v
	}
	return 1
}

func max0(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
