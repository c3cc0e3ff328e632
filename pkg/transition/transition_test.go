package transition

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/roadgraph"
)

type nodeID int64

func (id nodeID) StartID() nodeID { return -1 }
func (id nodeID) EndID() nodeID   { return -2 }

type runtime struct{}

type meta struct{}

func (meta) Accessible(runtime, roadgraph.Direction) bool { return true }

// buildMainline is a straight 4-node, 3-edge road running east along
// latitude 1.0, long enough that every test observation has exactly one
// edge within the default search radius.
func buildMainline(t *testing.T) *roadgraph.Graph[nodeID, meta, runtime] {
	t.Helper()

	edges := []roadgraph.RawEdge[nodeID]{
		{Source: 1, Target: 2, Weight: 100, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0000, TargetLat: 1.0000, TargetLon: 103.0050, EdgeIndex: 1},
		{Source: 2, Target: 3, Weight: 100, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0050, TargetLat: 1.0000, TargetLon: 103.0100, EdgeIndex: 2},
		{Source: 3, Target: 4, Weight: 100, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0100, TargetLat: 1.0000, TargetLon: 103.0150, EdgeIndex: 3},
	}
	return roadgraph.Build[nodeID, meta, runtime](edges, map[uint32]meta{1: {}, 2: {}, 3: {}})
}

func mainlinePoints() []orb.Point {
	return []orb.Point{
		{103.0010, 1.00003},
		{103.0060, 1.00003},
		{103.0110, 1.00003},
	}
}

func newMainlineOptions(solver SolverVariant) MatchOptions[runtime] {
	opts := DefaultMatchOptions(runtime{})
	opts.Solver = solver
	return opts
}

func TestNewRejectsTooFewPoints(t *testing.T) {
	g := buildMainline(t)

	_, err := New[nodeID, meta, runtime](g, []orb.Point{{103.0, 1.0}}, newMainlineOptions(Fastest),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())

	var matchErr *MatchError
	if err == nil {
		t.Fatalf("New() error = nil, want InputError")
	}
	if !errors.As(err, &matchErr) || matchErr.Kind != InputError {
		t.Errorf("err = %v, want InputError", err)
	}
}

func TestNewRejectsNonFiniteCoordinate(t *testing.T) {
	g := buildMainline(t)
	points := []orb.Point{{103.0, 1.0}, {math.NaN(), 1.0}}

	_, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Fastest),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())

	var matchErr *MatchError
	if err == nil {
		t.Fatalf("New() error = nil, want InputError")
	}
	if !errors.As(err, &matchErr) || matchErr.Kind != InputError {
		t.Errorf("err = %v, want InputError", err)
	}
}

func TestSolvePrecomputeFindsFullRoute(t *testing.T) {
	g := buildMainline(t)
	points := mainlinePoints()

	tr, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Precompute),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := tr.Solve()
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(path.Route) != len(points) {
		t.Fatalf("Route = %v, want %d candidates (one per observation)", path.Route, len(points))
	}
}

func TestSolveSelectiveMatchesPrecompute(t *testing.T) {
	g := buildMainline(t)
	points := mainlinePoints()

	trPre, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Precompute),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	precomputePath, err := trPre.Solve()
	if err != nil {
		t.Fatalf("Precompute Solve() error = %v", err)
	}

	trSel, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Selective),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	selectivePath, err := trSel.Solve()
	if err != nil {
		t.Fatalf("Selective Solve() error = %v", err)
	}

	if precomputePath.Cost != selectivePath.Cost {
		t.Errorf("Precompute cost = %d, Selective cost = %d, want equal", precomputePath.Cost, selectivePath.Cost)
	}
	if len(precomputePath.Route) != len(selectivePath.Route) {
		t.Errorf("Precompute route len = %d, Selective route len = %d", len(precomputePath.Route), len(selectivePath.Route))
	}
}

func TestFastestAliasesPrecompute(t *testing.T) {
	g := buildMainline(t)
	points := mainlinePoints()

	trFast, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Fastest),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	fastestPath, err := trFast.Solve()
	if err != nil {
		t.Fatalf("Fastest Solve() error = %v", err)
	}

	trPre, err := New[nodeID, meta, runtime](g, points, newMainlineOptions(Precompute),
		cost.NewDefaultEmissionCost(), DefaultTransitionCostFor[nodeID]())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	precomputePath, err := trPre.Solve()
	if err != nil {
		t.Fatalf("Precompute Solve() error = %v", err)
	}

	if fastestPath.Cost != precomputePath.Cost {
		t.Errorf("Fastest cost = %d, Precompute cost = %d, want equal (Fastest aliases Precompute)", fastestPath.Cost, precomputePath.Cost)
	}
	if len(fastestPath.Route) != len(precomputePath.Route) {
		t.Fatalf("Fastest route = %v, Precompute route = %v, want identical", fastestPath.Route, precomputePath.Route)
	}
	for i := range fastestPath.Route {
		if fastestPath.Route[i] != precomputePath.Route[i] {
			t.Errorf("route[%d]: Fastest = %v, Precompute = %v, want identical", i, fastestPath.Route[i], precomputePath.Route[i])
		}
	}
}

// DefaultTransitionCostFor names cost.DefaultTransitionCost's zero value
// clearly at each call site above.
func DefaultTransitionCostFor[E roadgraph.Entry[E]]() cost.DefaultTransitionCost[E] {
	return cost.DefaultTransitionCost[E]{}
}
