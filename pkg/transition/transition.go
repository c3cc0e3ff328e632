// Package transition is the per-request orchestration façade: it turns a
// raw GPS linestring into a collapsed route by wiring together candidate
// generation (pkg/candidate), reachability resolution (pkg/reach), cost
// scoring (pkg/cost), and the final shortest-path extraction (pkg/collapse)
// behind a chosen solver variant.
//
// Grounded on the original's transition::entity::Transition and
// transition::solvers module, and on map_router's pkg/routing package for
// the shape of a request-scoped façade wrapping a shared, read-only graph.
package transition

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/candidate"
	"github.com/routers-org/routers/pkg/collapse"
	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// Transition is the per-request state: a woven candidate arena built from
// an input linestring, paired with the road graph and cost strategies
// needed to collapse it into a route.
type Transition[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any] struct {
	graph   *roadgraph.Graph[E, M, R]
	arena   *candidate.Candidates[E]
	layers  candidate.Layers
	options MatchOptions[R]

	transitionCost cost.Strategy[cost.TransitionContext[E]]
}

// New validates the input linestring, generates the
// layered candidate set in parallel, and weaves it into a
// single candidate arena bracketed by the synthetic source/target — ready for Solve.
func New[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](
	g *roadgraph.Graph[E, M, R],
	points []orb.Point,
	opts MatchOptions[R],
	emissionCost cost.Strategy[cost.EmissionContext],
	transitionCost cost.Strategy[cost.TransitionContext[E]],
) (*Transition[E, M, R], error) {
	if err := validateInput(points); err != nil {
		return nil, newInputError(err)
	}

	searchDistance := opts.SearchDistance
	if searchDistance <= 0 {
		searchDistance = candidate.DefaultSearchDistance
	}

	arena, layers, err := candidate.Generate[E, M, R](g, points, emissionCost, searchDistance)
	if err != nil {
		return nil, newInputError(err)
	}
	for _, layer := range layers {
		if len(layer.Nodes) == 0 {
			return nil, newNoCandidatesError(ErrNoCandidatesForObservation)
		}
	}

	arena.Weave(layers)

	return &Transition[E, M, R]{
		graph:          g,
		arena:          arena,
		layers:         layers,
		options:        opts,
		transitionCost: transitionCost,
	}, nil
}

// validateInput checks the minimum-points and finite-coordinate invariants
// every match request must satisfy.
func validateInput(points []orb.Point) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	for _, p := range points {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return ErrNonFiniteCoordinate
		}
	}
	return nil
}

// Solve delegates to the configured SolverVariant and collapses the woven
// arena into the winning route, wrapping any failure as a CollapseFailure
// MatchError.
func (t *Transition[E, M, R]) Solve() (collapse.CollapsedPath[E], error) {
	var solver Solver[E, M, R]
	switch t.options.Solver {
	case Selective:
		solver = SelectiveForwardSolver[E, M, R]{}
	default:
		// Fastest and Precompute share the same implementation.
		solver = PrecomputeForwardSolver[E, M, R]{}
	}

	path, err := solver.Solve(t)
	if err != nil {
		return collapse.CollapsedPath[E]{}, newCollapseError(err)
	}
	return path, nil
}

// Arena exposes the underlying candidate graph.
func (t *Transition[E, M, R]) Arena() *candidate.Candidates[E] { return t.arena }

// Layers exposes the woven per-observation layer structure.
func (t *Transition[E, M, R]) Layers() candidate.Layers { return t.layers }
