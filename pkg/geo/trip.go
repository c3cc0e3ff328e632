package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Trip is an ordered sequence of positions traversed by a candidate route.
// It backs the turn-cost and deviance heuristics in pkg/cost.
type Trip struct {
	points []orb.Point
}

// NewTrip builds a Trip from an ordered sequence of positions.
func NewTrip(points []orb.Point) Trip {
	return Trip{points: points}
}

// LineString converts the trip into its geometry.
func (t Trip) LineString() orb.LineString {
	ls := make(orb.LineString, len(t.points))
	copy(ls, t.points)
	return ls
}

// Length returns the sum of geodesic segment lengths, in meters.
func (t Trip) Length() float64 {
	var total float64
	for i := 1; i < len(t.points); i++ {
		total += Distance(t.points[i-1], t.points[i])
	}
	return total
}

// minHeadingDistance is the minimum segment length, in meters, for which a
// bearing is computed; shorter segments are skipped as near-duplicate points.
const minHeadingDistance = 1.0

// Headings returns the bearing (degrees, 0 = north) for each consecutive pair
// of points whose distance is at least minHeadingDistance. Near-duplicate
// points are skipped rather than producing a degenerate bearing.
func (t Trip) Headings() []float64 {
	headings := make([]float64, 0, len(t.points))
	for i := 1; i < len(t.points); i++ {
		a, b := t.points[i-1], t.points[i]
		if Distance(a, b) < minHeadingDistance {
			continue
		}
		headings = append(headings, Bearing(a, b))
	}
	return headings
}

// DeltaAngle returns the absolute turn angle between each pair of consecutive
// headings, normalized to [0, 180] degrees.
func (t Trip) DeltaAngle() []float64 {
	headings := t.Headings()
	if len(headings) < 2 {
		return nil
	}

	deltas := make([]float64, 0, len(headings)-1)
	for i := 1; i < len(headings); i++ {
		turn := headings[i] - headings[i-1]
		if turn > 180 {
			turn -= 360
		} else if turn < -180 {
			turn += 360
		}
		deltas = append(deltas, math.Abs(turn))
	}
	return deltas
}

// TotalAngle returns the sum of delta angles exhibited by the trip.
func (t Trip) TotalAngle() float64 {
	var total float64
	for _, d := range t.DeltaAngle() {
		total += d
	}
	return total
}

// ImmediateAngle returns the average angle per node: TotalAngle / node count.
func (t Trip) ImmediateAngle() float64 {
	if len(t.points) == 0 {
		return 0
	}
	return t.TotalAngle() / float64(len(t.points))
}

// Angular complexity hyperparameters.
const (
	uTurnThresholdDeg = 179.0
	complexityExp     = 4    // P: exponent on the cosine costing function
	complexityAlpha   = 12.0 // ALPHA: exaggeration factor
)

// AngularComplexity returns a length-weighted cosine-power score in [0, 1],
// where higher is better (lower cost). Any single near-U-turn delta
// (>= 179 degrees) forces the score to 0.
func (t Trip) AngularComplexity() float64 {
	angles := t.DeltaAngle()
	if len(angles) == 0 {
		return 1.0
	}

	for _, a := range angles {
		if a >= uTurnThresholdDeg {
			return 0.0
		}
	}

	segLengths := t.segmentLengths()

	weights := make([]float64, len(angles))
	var sumW float64
	for i := range angles {
		w := (segLengths[i] + segLengths[i+1]) / 2.0
		weights[i] = w
		sumW += w
	}
	if sumW <= 0 {
		return 1.0
	}
	for i := range weights {
		weights[i] /= sumW
	}

	var logCost float64
	for i, theta := range angles {
		thetaRad := theta * math.Pi / 180
		val := math.Max(math.Cos(thetaRad/2), 0)
		val = math.Pow(val, complexityExp)
		logCost += weights[i] * math.Log(val)
	}

	cost := math.Exp(complexityAlpha * logCost)
	return clamp01(cost)
}

// segmentLengths returns the geodesic distance between each consecutive pair
// of points, skipping pairs closer than minHeadingDistance exactly as
// Headings does, so it stays aligned with the headings slice used to derive
// DeltaAngle — one length per kept heading.
func (t Trip) segmentLengths() []float64 {
	lengths := make([]float64, 0, len(t.points))
	for i := 1; i < len(t.points); i++ {
		a, b := t.points[i-1], t.points[i]
		d := Distance(a, b)
		if d < minHeadingDistance {
			continue
		}
		lengths = append(lengths, d)
	}
	return lengths
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
