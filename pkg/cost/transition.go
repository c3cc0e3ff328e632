package cost

import (
	"math"

	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// TransitionContext carries what the transition cost needs to score a
// single candidate-graph edge: the underlying road path between the two
// candidates, the layer width (geodesic distance between the two
// observations), the trip traced through the chosen route, and how the
// path was resolved.
type TransitionContext[E roadgraph.Entry[E]] struct {
	Path             []roadgraph.Edge[E]
	LayerWidth       float64
	OptimalPath      geo.Trip
	ResolutionMethod ResolutionMethod
}

// TransitionLengths pairs a route's traveled length with the straight-line
// distance between its endpoints, backing the deviance sub-cost.
type TransitionLengths struct {
	RouteLength      float64
	StraightLineDist float64
}

// Deviance returns 1 - |route - straight| / max(route, straight), bounded
// to [0,1]. Penalizes routes much longer than the direct
// geodesic distance between candidates.
func (l TransitionLengths) Deviance() float64 {
	denom := math.Max(l.RouteLength, l.StraightLineDist)
	if denom == 0 {
		return 1
	}
	d := 1 - math.Abs(l.RouteLength-l.StraightLineDist)/denom
	return clamp01(d)
}

// DefaultTransitionCost is the default transition strategy: a weighted sum
// of distinct (road-class detour), turn, and deviance sub-costs, grounded on the original's transition::costing::default module
// (DefaultTransitionCost::calculate, travel_cost). Parameterized over E
// since it reads edge weights out of the underlying road path.
type DefaultTransitionCost[E roadgraph.Entry[E]] struct{}

// Weights for the three sub-costs.
const (
	turnWeight     = 0.6
	distinctWeight = 0.3
	devianceWeight = 0.1
)

// Calculate implements Strategy[TransitionContext[E]].
func (DefaultTransitionCost[E]) Calculate(ctx TransitionContext[E]) (float64, bool) {
	distinct := travelCost(ctx.Path)
	turn := ctx.OptimalPath.AngularComplexity()

	lengths := TransitionLengths{
		RouteLength:      ctx.OptimalPath.Length(),
		StraightLineDist: ctx.LayerWidth,
	}
	deviance := lengths.Deviance()

	total := turnWeight*turn + distinctWeight*distinct + devianceWeight*deviance
	return clamp01(total), true
}

// travelCost returns (1/avg_weight)^2 clamped to [0,1], where avg_weight is
// the mean edge weight along path. An empty path or zero average weight is
// treated as the worst case, 0.
func travelCost[E roadgraph.Entry[E]](path []roadgraph.Edge[E]) float64 {
	if len(path) == 0 {
		return 0
	}

	var sum float64
	for _, e := range path {
		sum += float64(e.Weight)
	}
	avg := sum / float64(len(path))
	if avg == 0 {
		return 0
	}

	v := 1.0 / avg
	return clamp01(v * v)
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
