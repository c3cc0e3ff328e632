// Package mapmatch is the top-level façade binding a road graph to the
// transition solver: Match runs the full hidden Markov pipeline and returns
// a RoutedPath, Snap runs the same pipeline but skips discretized-path
// assembly.
//
// Grounded on the original's graph::traits::match::Match trait
// (r#match/snap methods returning Result<RoutedPath<E, M>, MatchError>) and
// map_router's pkg/routing.Engine, which wraps a read-only graph plus a
// snapper behind a single Route entry point.
package mapmatch

import (
	"log"

	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/collapse"
	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/roadgraph"
	"github.com/routers-org/routers/pkg/transition"
)

// PathEntry is one point along a RoutedPath, paired with the road edge it
// sits on and that edge's metadata.
type PathEntry[E roadgraph.Entry[E], M any] struct {
	Point    orb.Point
	Edge     roadgraph.Edge[E]
	Metadata M
}

// RoutedPath is a successful match's output: the chosen candidate
// projections (one per input observation) and the full road polyline that
// connects them.
type RoutedPath[E roadgraph.Entry[E], M any] struct {
	// Interpolated holds one entry per input observation: the winning
	// candidate's projected point on its matched edge.
	Interpolated []PathEntry[E, M]
	// Discretized holds the concatenated per-edge road polyline of the
	// chosen route, one entry per traversed edge plus the route's final
	// node. Empty for a Snap result.
	Discretized []PathEntry[E, M]
}

// Matcher binds a road graph to the cost strategies used to score
// candidates and transitions, exposing the Match/Snap façade.
type Matcher[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any] struct {
	graph          *roadgraph.Graph[E, M, R]
	emissionCost   cost.Strategy[cost.EmissionContext]
	transitionCost cost.Strategy[cost.TransitionContext[E]]
}

// New binds graph to the default emission and transition cost strategies.
func New[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R]) *Matcher[E, M, R] {
	return &Matcher[E, M, R]{
		graph:          g,
		emissionCost:   cost.NewDefaultEmissionCost(),
		transitionCost: cost.DefaultTransitionCost[E]{},
	}
}

// WithCostStrategies overrides the default emission/transition cost
// strategies, for callers scoring candidates against a custom model.
func (m *Matcher[E, M, R]) WithCostStrategies(
	emission cost.Strategy[cost.EmissionContext],
	transitionCost cost.Strategy[cost.TransitionContext[E]],
) *Matcher[E, M, R] {
	m.emissionCost = emission
	m.transitionCost = transitionCost
	return m
}

// Match runs the full pipeline against linestring: candidate generation,
// weaving, reachability resolution under opts.Solver, and collapse. The
// returned RoutedPath has both Interpolated and Discretized populated.
func (m *Matcher[E, M, R]) Match(linestring []orb.Point, opts transition.MatchOptions[R]) (RoutedPath[E, M], error) {
	return m.run(linestring, opts, true)
}

// Snap runs the same pipeline as Match but skips discretized-path assembly,
// for callers that only need the snapped candidate projections.
func (m *Matcher[E, M, R]) Snap(linestring []orb.Point, opts transition.MatchOptions[R]) (RoutedPath[E, M], error) {
	return m.run(linestring, opts, false)
}

// MatchSimple matches linestring against the map using the default search
// radius and Fastest solver for the given runtime.
func (m *Matcher[E, M, R]) MatchSimple(linestring []orb.Point, runtime R) (RoutedPath[E, M], error) {
	return m.Match(linestring, transition.DefaultMatchOptions(runtime))
}

func (m *Matcher[E, M, R]) run(linestring []orb.Point, opts transition.MatchOptions[R], discretize bool) (RoutedPath[E, M], error) {
	log.Printf("mapmatch: matching %d positions (solver=%s)", len(linestring), opts.Solver)

	t, err := transition.New[E, M, R](m.graph, linestring, opts, m.emissionCost, m.transitionCost)
	if err != nil {
		return RoutedPath[E, M]{}, err
	}

	collapsed, err := t.Solve()
	if err != nil {
		return RoutedPath[E, M]{}, err
	}

	result := RoutedPath[E, M]{Interpolated: m.interpolatedPath(collapsed)}
	if discretize {
		result.Discretized = m.discretizedPath(collapsed)
	}

	log.Printf("mapmatch: matched %d candidates, cost=%d", len(result.Interpolated), collapsed.Cost)
	return result, nil
}

// interpolatedPath builds one PathEntry per winning candidate, in layer
// order, from the collapsed route's candidate ids.
func (m *Matcher[E, M, R]) interpolatedPath(path collapse.CollapsedPath[E]) []PathEntry[E, M] {
	out := make([]PathEntry[E, M], 0, len(path.Route))
	for _, id := range path.Route {
		cand, ok := path.Candidates.Candidate(id)
		if !ok {
			continue
		}
		out = append(out, PathEntry[E, M]{
			Point:    cand.Point,
			Edge:     cand.Edge.Edge,
			Metadata: m.metaFor(cand.Edge.ID),
		})
	}
	return out
}

// discretizedPath concatenates each winning candidate's own road edge and
// the Reachable road path linking it to the next candidate into the full
// node polyline the route traverses (an edge repeated back to back, as for
// two candidates on one edge, is listed once), then closes it with the
// final node reached.
func (m *Matcher[E, M, R]) discretizedPath(path collapse.CollapsedPath[E]) []PathEntry[E, M] {
	out := make([]PathEntry[E, M], 0)

	var last E
	haveLast := false
	for i, id := range path.Route {
		edges := []roadgraph.Edge[E]{}
		if i > 0 && i-1 < len(path.Reached) {
			edges = append(edges, path.Reached[i-1].Path...)
		}
		if cand, ok := path.Candidates.Candidate(id); ok {
			edges = append(edges, cand.Edge.Edge)
		}
		for _, e := range edges {
			if n := len(out); n > 0 && out[n-1].Edge == e {
				continue
			}
			lat, lon, ok := m.graph.GetPosition(e.Source)
			if !ok {
				continue
			}
			out = append(out, PathEntry[E, M]{
				Point:    orb.Point{lon, lat},
				Edge:     e,
				Metadata: m.metaFor(e.ID),
			})
			last, haveLast = e.Target, true
		}
	}

	if haveLast {
		if lat, lon, ok := m.graph.GetPosition(last); ok {
			out = append(out, PathEntry[E, M]{Point: orb.Point{lon, lat}})
		}
	}
	return out
}

func (m *Matcher[E, M, R]) metaFor(id roadgraph.EdgeID[E]) M {
	meta, _ := m.graph.Meta(id)
	return meta
}
