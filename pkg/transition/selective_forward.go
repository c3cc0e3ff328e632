package transition

import (
	"github.com/routers-org/routers/pkg/candidate"
	"github.com/routers-org/routers/pkg/collapse"
	"github.com/routers-org/routers/pkg/reach"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// memoizedResolution is one lazily-computed edge's cached reachability
// result.
type memoizedResolution[E roadgraph.Entry[E]] struct {
	weight  float64
	reached reach.Reachable[E]
	ok      bool
}

// SelectiveForwardSolver resolves reachability lazily: a candidate-graph
// edge's transition cost is computed only the first time the collapse
// search actually relaxes that edge, and memoized for the remainder of the
// search. Grounded on the original's
// selective_forward solver, which defers reach() calls into the search
// itself rather than precomputing every woven pair up front.
//
// The collapse search that drives resolve is single-goroutine, so the memo
// map needs no locking of its own.
type SelectiveForwardSolver[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any] struct{}

// Solve implements Solver[E, M, R].
func (SelectiveForwardSolver[E, M, R]) Solve(t *Transition[E, M, R]) (collapse.CollapsedPath[E], error) {
	memo := make(map[collapse.ReachableKey]memoizedResolution[E])

	resolve := func(from, to candidate.ID) (float64, reach.Reachable[E], bool) {
		key := collapse.ReachableKey{A: from, B: to}
		if v, ok := memo[key]; ok {
			return v.weight, v.reached, v.ok
		}

		ca, okA := t.arena.Candidate(from)
		cb, okB := t.arena.Candidate(to)
		if !okA || !okB {
			return 0, reach.Reachable[E]{}, false
		}

		fromOrigin := t.layers[ca.Location.LayerID].Origin
		toOrigin := t.layers[cb.Location.LayerID].Origin

		r, weight, ok := resolveTransition[E, M, R](
			t.graph, t.options.Runtime, t.transitionCost,
			ca, cb, fromOrigin, toOrigin,
		)

		memo[key] = memoizedResolution[E]{weight: weight, reached: r, ok: ok}
		return weight, r, ok
	}

	return collapse.CollapseWithResolver[E](t.arena, resolve)
}
