package candidate

import (
	"sort"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/roadgraph"
	"github.com/routers-org/routers/pkg/scan"
)

// DefaultSearchDistance is the default candidate-scan radius in meters.
const DefaultSearchDistance = 50.0

// perObservation is the per-layer scratch result produced independently
// for each input observation, before the deterministic fold that builds
// the shared Candidates arena.
type perObservation[E roadgraph.Entry[E]] struct {
	index      int
	origin     orb.Point
	candidates []Candidate[E]
}

// Generate builds the full layered candidate set for an input linestring:
// per-observation candidate discovery runs in parallel, then candidates are folded into a single
// Candidates arena in a fixed, deterministic order.
func Generate[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](
	g *roadgraph.Graph[E, M, R],
	points []orb.Point,
	emission cost.Strategy[cost.EmissionContext],
	searchDistance float64,
) (*Candidates[E], Layers, error) {
	results := make([]perObservation[E], len(points))

	var grp errgroup.Group
	for i, p := range points {
		i, p := i, p
		grp.Go(func() error {
			projected := scan.NodesProjected(g, p, searchDistance)

			cands := make([]Candidate[E], 0, len(projected))
			for _, pr := range projected {
				distance := geo.Distance(pr.Point, p)
				emissionCost := cost.Evaluate(emission, cost.EmissionContext{
					Point:    pr.Point,
					Origin:   p,
					Distance: distance,
				})
				cands = append(cands, Candidate[E]{
					Edge:         pr.Edge,
					Point:        pr.Point,
					EmissionCost: emissionCost,
					Fraction:     pr.Fraction,
					Forward:      pr.Edge.ID.Direction.Has(roadgraph.Forward),
				})
			}

			results[i] = perObservation[E]{index: i, origin: p, candidates: cands}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	// Deterministic fold: always walk observations in input order, and
	// within an observation always walk candidates in scan-result order,
	// grounded on the original layer generator's hashmap_to_vec
	// sorted-by-layer-id fold.
	sort.SliceStable(results, func(i, j int) bool { return results[i].index < results[j].index })

	arena := New[E]()
	layers := make(Layers, len(results))

	for _, r := range results {
		nodeIDs := make([]ID, 0, len(r.candidates))
		for nodeIdx, c := range r.candidates {
			c.Location = Location{LayerID: r.index, NodeID: nodeIdx}
			id := arena.Insert(c)
			nodeIDs = append(nodeIDs, id)
		}
		layers[r.index] = Layer{Nodes: nodeIDs, Origin: r.origin}
	}

	return arena, layers, nil
}
