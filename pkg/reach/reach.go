package reach

import (
	"github.com/routers-org/routers/pkg/cost"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// Reachable describes a road-network route linking two candidates. An empty Path with ResolutionMethod == cost.DistanceOnly
// means the two candidates project onto the same forward-direction edge,
// so no routing was needed.
type Reachable[E roadgraph.Entry[E]] struct {
	Path             []roadgraph.Edge[E]
	ResolutionMethod cost.ResolutionMethod
}

// DistanceOnly returns a Reachable carrying no path, for the same-edge
// forward case.
func DistanceOnly[E roadgraph.Entry[E]]() Reachable[E] {
	return Reachable[E]{ResolutionMethod: cost.DistanceOnly}
}

// PathNodes returns the sequence of road nodes traversed by the path:
// every edge's source followed by the final edge's target.
func (r Reachable[E]) PathNodes() []E {
	if len(r.Path) == 0 {
		return nil
	}
	nodes := make([]E, 0, len(r.Path)+1)
	for _, e := range r.Path {
		nodes = append(nodes, e.Source)
	}
	nodes = append(nodes, r.Path[len(r.Path)-1].Target)
	return nodes
}

// SourceCandidate is the subset of a candidate's fields reachability needs:
// which road edge it sits on and how far along it.
type SourceCandidate[E roadgraph.Entry[E]] struct {
	EdgeSource E
	EdgeTarget E
	EdgeIndex  uint32
	Percentage float64
	Forward    bool
}

// Resolve computes the Reachable linking source to target. It first checks
// the same-edge forward fast path:
// if both candidates sit on the same underlying edge, in the same
// direction, with source's position at or before target's, no routing is
// needed. Otherwise (including same-edge-but-reverse, or inverted
// percentages) it falls through to the general path search via tree, a
// bounded-Dijkstra parent-map rooted at source.EdgeTarget.
func Resolve[E roadgraph.Entry[E]](
	source, target SourceCandidate[E],
	tree map[E]roadgraph.ParentEntry[E],
	maxSteps int,
	edgeOf func(a, b E) (roadgraph.Edge[E], bool),
) (Reachable[E], bool) {
	if source.EdgeIndex == target.EdgeIndex &&
		source.Forward == target.Forward &&
		source.Forward &&
		source.Percentage <= target.Percentage {
		return DistanceOnly[E](), true
	}

	nodes, ok := PathBuilder(tree, source.EdgeTarget, target.EdgeSource, maxSteps)
	if !ok {
		return Reachable[E]{}, false
	}

	path := make([]roadgraph.Edge[E], 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		e, ok := edgeOf(nodes[i-1], nodes[i])
		if !ok {
			return Reachable[E]{}, false
		}
		path = append(path, e)
	}

	return Reachable[E]{Path: path, ResolutionMethod: cost.Standard}, true
}
