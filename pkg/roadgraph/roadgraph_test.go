package roadgraph

import "testing"

// testNodeID is a minimal Entry fixture used by this package's tests.
type testNodeID int64

func (id testNodeID) StartID() testNodeID { return -1 }
func (id testNodeID) EndID() testNodeID   { return -2 }

// testRuntime is a minimal runtime fixture: no restrictions.
type testRuntime struct{}

// testMeta is a minimal Metadata fixture: one-way roads reject Backward.
type testMeta struct {
	oneWay bool
}

func (m testMeta) Accessible(_ testRuntime, dir Direction) bool {
	if m.oneWay && dir == Backward {
		return false
	}
	return true
}

func buildTriangle(t *testing.T) *Graph[testNodeID, testMeta, testRuntime] {
	t.Helper()

	edges := []RawEdge[testNodeID]{
		{Source: 1, Target: 2, Weight: 100, Direction: Forward, SourceLat: 1.0, SourceLon: 103.0, TargetLat: 1.1, TargetLon: 103.0, EdgeIndex: 1},
		{Source: 2, Target: 3, Weight: 200, Direction: Forward, SourceLat: 1.1, SourceLon: 103.0, TargetLat: 1.0, TargetLon: 103.1, EdgeIndex: 2},
		{Source: 3, Target: 1, Weight: 300, Direction: Forward, SourceLat: 1.0, SourceLon: 103.1, TargetLat: 1.0, TargetLon: 103.0, EdgeIndex: 3},
	}
	meta := map[uint32]testMeta{
		1: {oneWay: true},
		2: {oneWay: false},
		3: {oneWay: true},
	}
	return Build[testNodeID, testMeta, testRuntime](edges, meta)
}

func TestBuildSizeAndPositions(t *testing.T) {
	g := buildTriangle(t)

	if g.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", g.Size())
	}

	lat, lon, ok := g.GetPosition(2)
	if !ok {
		t.Fatalf("GetPosition(2) missing")
	}
	if lat != 1.1 || lon != 103.0 {
		t.Errorf("GetPosition(2) = (%f,%f), want (1.1,103.0)", lat, lon)
	}
}

func TestEdgeLookup(t *testing.T) {
	g := buildTriangle(t)

	e, ok := g.Edge(1, 2)
	if !ok {
		t.Fatalf("Edge(1,2) missing")
	}
	if e.Weight != 100 {
		t.Errorf("Edge(1,2).Weight = %d, want 100", e.Weight)
	}

	if _, ok := g.Edge(2, 1); ok {
		t.Errorf("Edge(2,1) should not exist (graph is one-directional here)")
	}
}

func TestSuccessorsAndMeta(t *testing.T) {
	g := buildTriangle(t)

	succ := g.Successors(1)
	if len(succ) != 1 {
		t.Fatalf("Successors(1) = %d edges, want 1", len(succ))
	}

	m, ok := g.Meta(succ[0].ID)
	if !ok {
		t.Fatalf("Meta(%v) missing", succ[0].ID)
	}
	if !m.Accessible(testRuntime{}, Forward) {
		t.Errorf("expected edge 1 forward-accessible")
	}
	if m.Accessible(testRuntime{}, Backward) {
		t.Errorf("expected edge 1 (one-way) inaccessible backward")
	}
}

func TestNodeIndexSearch(t *testing.T) {
	g := buildTriangle(t)

	var found []Node[testNodeID]
	g.NodeIndex().Search(
		[2]float64{102.9, 0.9},
		[2]float64{103.2, 1.2},
		func(_, _ [2]float64, data Node[testNodeID]) bool {
			found = append(found, data)
			return true
		},
	)

	if len(found) != 3 {
		t.Errorf("NodeIndex search found %d nodes, want 3", len(found))
	}
}

func TestSuccessorsCacheComputesOnce(t *testing.T) {
	cache := NewSuccessorsCache[testNodeID]()

	calls := 0
	compute := func() map[testNodeID]ParentEntry[testNodeID] {
		calls++
		return map[testNodeID]ParentEntry[testNodeID]{
			2: {Parent: 1, Cost: 100},
		}
	}

	first := cache.Query(1, compute)
	second := cache.Query(1, compute)

	if calls != 1 {
		t.Errorf("compute called %d times, want 1 (cache should memoize)", calls)
	}
	if first[2].Cost != second[2].Cost {
		t.Errorf("cached trees diverge: %v vs %v", first, second)
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", cache.Len())
	}
}
