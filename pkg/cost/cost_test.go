package cost

import (
	"math"
	"testing"

	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/roadgraph"
)

type nodeID int64

func (id nodeID) StartID() nodeID { return -1 }
func (id nodeID) EndID() nodeID   { return -2 }

func withinTolerance(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestDefaultEmissionCostDecaysSteeply(t *testing.T) {
	e := NewDefaultEmissionCost()

	near, _ := e.Calculate(EmissionContext{Distance: 1})
	far, _ := e.Calculate(EmissionContext{Distance: 10})

	if near <= far {
		t.Errorf("near-candidate cost %f should exceed far-candidate cost %f", near, far)
	}
}

func TestEmissionCostAtZeroDistance(t *testing.T) {
	e := NewDefaultEmissionCost()
	v, ok := e.Calculate(EmissionContext{Distance: 0})
	if !ok {
		t.Fatalf("Calculate() reported no cost at distance 0")
	}
	if v != e.FreeRadius {
		t.Errorf("Calculate(distance=0) = %f, want FreeRadius %f", v, e.FreeRadius)
	}
}

// TestTravelCostRemainVsOfframp mirrors the original fixture assertion that
// remaining on the higher-priority road scores travel_cost close to 1.0
// while diverting onto a lower-priority offramp scores close to 0.25
// (weight doubles relative to the mainline).
func TestTravelCostRemainVsOfframp(t *testing.T) {
	remain := []roadgraph.Edge[nodeID]{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
		{Source: 3, Target: 4, Weight: 1},
	}
	offramp := []roadgraph.Edge[nodeID]{
		{Source: 1, Target: 2, Weight: 2},
		{Source: 2, Target: 3, Weight: 2},
	}

	remainCost := travelCost(remain)
	offrampCost := travelCost(offramp)

	if !withinTolerance(remainCost, 1.0, 1e-3) {
		t.Errorf("travelCost(remain) = %f, want ~1.0", remainCost)
	}
	if !withinTolerance(offrampCost, 0.25, 1e-2) {
		t.Errorf("travelCost(offramp) = %f, want ~0.25", offrampCost)
	}
	if remainCost <= offrampCost {
		t.Errorf("remain cost %f should strictly exceed offramp cost %f", remainCost, offrampCost)
	}
}

func TestTravelCostEmptyPath(t *testing.T) {
	if got := travelCost[nodeID](nil); got != 0 {
		t.Errorf("travelCost(nil) = %f, want 0", got)
	}
}

func TestDevianceBoundedAndPenalizesDetours(t *testing.T) {
	direct := TransitionLengths{RouteLength: 100, StraightLineDist: 100}
	detour := TransitionLengths{RouteLength: 400, StraightLineDist: 100}

	if got := direct.Deviance(); got != 1.0 {
		t.Errorf("Deviance() for a direct route = %f, want 1.0", got)
	}

	detourScore := detour.Deviance()
	if detourScore < 0 || detourScore > 1 {
		t.Errorf("Deviance() = %f, out of [0,1]", detourScore)
	}
	if detourScore >= 1.0 {
		t.Errorf("Deviance() for a 4x detour should be penalized, got %f", detourScore)
	}
}

func TestDefaultTransitionCostWithinUnitRange(t *testing.T) {
	var strat DefaultTransitionCost[nodeID]

	path := []roadgraph.Edge[nodeID]{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 2, Target: 3, Weight: 1},
	}

	ctx := TransitionContext[nodeID]{
		Path:             path,
		LayerWidth:       50,
		OptimalPath:      geo.NewTrip(nil),
		ResolutionMethod: Standard,
	}

	got, ok := strat.Calculate(ctx)
	if !ok {
		t.Fatalf("Calculate() reported no cost")
	}
	if got < 0 || got > 1 {
		t.Errorf("Calculate() = %f, out of [0,1]", got)
	}
}
