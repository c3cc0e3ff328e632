package transition

import (
	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/candidate"
	"github.com/routers-org/routers/pkg/collapse"
	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/reach"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// Solver is the contract every collapse strategy satisfies: given a
// Transition already holding a woven candidate arena, produce the winning
// route.
type Solver[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any] interface {
	Solve(t *Transition[E, M, R]) (collapse.CollapsedPath[E], error)
}

// successorsOf adapts the road graph's admissibility-filtered outgoing
// edges into reach.Successor values for a bounded Dijkstra expansion. Each
// successor's Distance is the edge's own geodesic length, read from the
// graph's node positions, so the search's (weight, distance) tie-break
// compares real cumulative distance rather than a permanently zero value.
func successorsOf[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], runtime R) func(E) []reach.Successor[E] {
	return func(u E) []reach.Successor[E] {
		edges := g.Successors(u)
		out := make([]reach.Successor[E], 0, len(edges))
		for _, e := range edges {
			meta, ok := g.Meta(e.ID)
			if !ok || !meta.Accessible(runtime, e.ID.Direction) {
				continue
			}
			out = append(out, reach.Successor[E]{Target: e.Target, Weight: e.Weight, Distance: edgeDistance(g, e)})
		}
		return out
	}
}

// edgeDistance returns e's own geodesic length, or 0 if either endpoint's
// position is unknown.
func edgeDistance[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], e roadgraph.Edge[E]) float64 {
	sourceLat, sourceLon, ok := g.GetPosition(e.Source)
	if !ok {
		return 0
	}
	targetLat, targetLon, ok := g.GetPosition(e.Target)
	if !ok {
		return 0
	}
	return geo.Distance(orb.Point{sourceLon, sourceLat}, orb.Point{targetLon, targetLat})
}

func edgeOf[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R]) func(a, b E) (roadgraph.Edge[E], bool) {
	return func(a, b E) (roadgraph.Edge[E], bool) { return g.Edge(a, b) }
}

// sourceCandidateOf extracts the subset of a candidate's fields
// reachability resolution needs.
func sourceCandidateOf[E roadgraph.Entry[E]](c candidate.Candidate[E]) reach.SourceCandidate[E] {
	return reach.SourceCandidate[E]{
		EdgeSource: c.Edge.Source,
		EdgeTarget: c.Edge.Target,
		EdgeIndex:  c.Edge.ID.Index,
		Percentage: c.Fraction,
		Forward:    c.Forward,
	}
}

// tripFromPath builds the geo.Trip the transition cost's turn/deviance
// sub-costs score, from a Reachable's road-node sequence.
func tripFromPath[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], r reach.Reachable[E]) geo.Trip {
	line := g.GetLine(r.PathNodes())
	points := make([]orb.Point, len(line))
	for i, p := range line {
		points[i] = orb.Point{p[0], p[1]}
	}
	return geo.NewTrip(points)
}

// resolveTransition computes the Reachable road path linking from to to and
// its scored transition cost, memoizing the bounded search tree rooted at
// from's edge target in the road graph's shared successors cache. ok is false if the bounded search never reaches to.
func resolveTransition[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](
	g *roadgraph.Graph[E, M, R],
	runtime R,
	transitionCost cost.Strategy[cost.TransitionContext[E]],
	from, to candidate.Candidate[E],
	fromOrigin, toOrigin orb.Point,
) (reach.Reachable[E], float64, bool) {
	tree := g.Cache().Query(from.Edge.Target, func() map[E]roadgraph.ParentEntry[E] {
		return reach.BoundedTree(from.Edge.Target, reach.DefaultBound, successorsOf[E, M, R](g, runtime))
	})

	r, ok := reach.Resolve(sourceCandidateOf(from), sourceCandidateOf(to), tree, len(tree)+1, edgeOf[E, M, R](g))
	if !ok {
		return reach.Reachable[E]{}, 0, false
	}

	trip := tripFromPath(g, r)
	weight := cost.Evaluate(transitionCost, cost.TransitionContext[E]{
		Path:             r.Path,
		LayerWidth:       geo.Distance(fromOrigin, toOrigin),
		OptimalPath:      trip,
		ResolutionMethod: r.ResolutionMethod,
	})
	return r, weight, true
}
