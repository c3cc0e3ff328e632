package transition

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/routers-org/routers/pkg/candidate"
	"github.com/routers-org/routers/pkg/collapse"
	"github.com/routers-org/routers/pkg/reach"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// PrecomputeForwardSolver resolves every candidate-graph edge's
// reachability up front, before collapsing. Layer pairs are handled one
// after another; within a pair, every candidate pair is resolved in its own
// goroutine. Grounded on pkg/candidate/generator.go's errgroup fan-out
// followed by a synchronization-point fold, adapted here to fan out per
// candidate pair instead of per observation.
type PrecomputeForwardSolver[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any] struct{}

type resolvedEdge[E roadgraph.Entry[E]] struct {
	from, to candidate.ID
	weight   float64
	reached  reach.Reachable[E]
	ok       bool
}

// Solve implements Solver[E, M, R].
func (PrecomputeForwardSolver[E, M, R]) Solve(t *Transition[E, M, R]) (collapse.CollapsedPath[E], error) {
	reached := make(map[collapse.ReachableKey]reach.Reachable[E])

	for i := 0; i+1 < len(t.layers); i++ {
		from, to := t.layers[i], t.layers[i+1]

		var mu sync.Mutex
		var grp errgroup.Group
		results := make([]resolvedEdge[E], 0, len(from.Nodes)*len(to.Nodes))

		for _, a := range from.Nodes {
			for _, b := range to.Nodes {
				a, b := a, b
				grp.Go(func() error {
					ca, _ := t.arena.Candidate(a)
					cb, _ := t.arena.Candidate(b)
					r, weight, ok := resolveTransition[E, M, R](
						t.graph, t.options.Runtime, t.transitionCost,
						ca, cb, from.Origin, to.Origin,
					)
					mu.Lock()
					results = append(results, resolvedEdge[E]{from: a, to: b, weight: weight, reached: r, ok: ok})
					mu.Unlock()
					return nil
				})
			}
		}
		_ = grp.Wait() // the resolver never returns an error; failures surface as ok=false

		for _, res := range results {
			if !res.ok {
				continue
			}
			t.arena.SetEdgeWeight(res.from, res.to, candidate.Edge{Weight: res.weight})
			reached[collapse.ReachableKey{A: res.from, B: res.to}] = res.reached
		}
	}

	return collapse.Collapse[E](t.arena, reached)
}
