package candidate

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/roadgraph"
)

type nodeID int64

func (id nodeID) StartID() nodeID { return -1 }
func (id nodeID) EndID() nodeID   { return -2 }

type runtime struct{}

type meta struct{}

func (meta) Accessible(runtime, roadgraph.Direction) bool { return true }

func buildMainline(t *testing.T) *roadgraph.Graph[nodeID, meta, runtime] {
	t.Helper()

	edges := []roadgraph.RawEdge[nodeID]{
		{Source: 1, Target: 2, Weight: 1, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0000, TargetLat: 1.0000, TargetLon: 103.0050, EdgeIndex: 1},
		{Source: 2, Target: 3, Weight: 1, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0050, TargetLat: 1.0000, TargetLon: 103.0100, EdgeIndex: 2},
		{Source: 3, Target: 4, Weight: 1, Direction: roadgraph.Forward,
			SourceLat: 1.0000, SourceLon: 103.0100, TargetLat: 1.0000, TargetLon: 103.0150, EdgeIndex: 3},
	}
	return roadgraph.Build[nodeID, meta, runtime](edges, map[uint32]meta{1: {}, 2: {}, 3: {}})
}

func TestWeaveBracketsWithSourceAndTarget(t *testing.T) {
	arena := New[nodeID]()

	a := arena.Insert(Candidate[nodeID]{EmissionCost: 0.5})
	b := arena.Insert(Candidate[nodeID]{EmissionCost: 0.5})
	c := arena.Insert(Candidate[nodeID]{EmissionCost: 0.5})

	layers := Layers{
		{Nodes: []ID{a}},
		{Nodes: []ID{b, c}},
	}
	arena.Weave(layers)

	sourceOut := arena.NextLayer(arena.Source())
	if len(sourceOut) != 1 || sourceOut[0].To != a {
		t.Fatalf("source successors = %v, want only layer-0 node %v", sourceOut, a)
	}

	aOut := arena.NextLayer(a)
	if len(aOut) != 2 {
		t.Fatalf("layer-0 node has %d successors, want 2 (full weave to layer 1)", len(aOut))
	}

	for _, last := range []ID{b, c} {
		out := arena.NextLayer(last)
		if len(out) != 1 || out[0].To != arena.Target() {
			t.Errorf("last-layer node %v successors = %v, want only target", last, out)
		}
	}
}

func TestGenerateProducesOneLayerPerObservation(t *testing.T) {
	g := buildMainline(t)

	points := []orb.Point{
		{103.0020, 1.00005},
		{103.0080, 1.00005},
	}

	arena, layers, err := Generate[nodeID, meta, runtime](g, points, cost.NewDefaultEmissionCost(), DefaultSearchDistance)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(layers) != len(points) {
		t.Fatalf("len(layers) = %d, want %d", len(layers), len(points))
	}

	for i, layer := range layers {
		if len(layer.Nodes) == 0 {
			t.Errorf("layer %d has no candidates", i)
		}
		for _, id := range layer.Nodes {
			cand, ok := arena.Candidate(id)
			if !ok {
				t.Fatalf("layer %d node %v missing from lookup", i, id)
			}
			d := geo.Distance(cand.Point, points[i])
			if d > DefaultSearchDistance+1 {
				t.Errorf("candidate at distance %f exceeds search radius %f", d, DefaultSearchDistance)
			}
		}
	}
}

func TestEdgeWeightRoundTrip(t *testing.T) {
	arena := New[nodeID]()
	a := arena.Insert(Candidate[nodeID]{})
	b := arena.Insert(Candidate[nodeID]{})
	arena.Weave(Layers{{Nodes: []ID{a}}, {Nodes: []ID{b}}})

	if _, ok := arena.EdgeWeight(a, b); !ok {
		t.Fatalf("EdgeWeight(a,b) missing after weave")
	}

	arena.SetEdgeWeight(a, b, Edge{Weight: 0.75})
	got, ok := arena.EdgeWeight(a, b)
	if !ok || got.Weight != 0.75 {
		t.Errorf("EdgeWeight(a,b) = %v, ok=%v, want 0.75/true", got, ok)
	}
}
