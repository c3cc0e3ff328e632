// Package candidate implements the layered candidate graph: per-observation
// candidate projections, their arena, and the weaving that links
// consecutive layers.
//
// Grounded on the original's transition::candidate::graph and
// transition::layer modules, implemented with a Go-idiomatic
// sync.RWMutex-guarded adjacency list instead of petgraph + scc::HashMap.
package candidate

import (
	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/roadgraph"
)

// ID identifies a node in the candidate graph: either a real candidate, or
// one of the two synthetic sentinels (Source, Target).
type ID int64

// Location pins a candidate to its position within the layered structure.
type Location struct {
	LayerID int
	NodeID  int
}

// Candidate is a single projected point from one observation onto one road
// edge, plus its precomputed emission cost.
//
// Fraction and Forward pin the candidate's position along Edge: Fraction is
// the [0,1] position along the edge's source->target segment, and Forward
// reports whether travel in that source->target direction is permitted
// (derived from Edge.ID.Direction). Both are read by reachability
// resolution's same-edge forward fast path.
type Candidate[E roadgraph.Entry[E]] struct {
	Edge         roadgraph.FatEdge[E]
	Point        orb.Point
	EmissionCost float64
	Location     Location
	Fraction     float64
	Forward      bool
}

// Ref is the lightweight value stored inside the candidate graph itself,
// carrying only what the collapse step needs without indirecting through
// the lookup table on every edge traversal.
//
// Emission is kept as the raw [0,1]-ish cost rather than pre-quantized:
// collapse's step_cost formula multiplies a still-floating emission value
// by 0.4*Scale at collapse time, which only produces the right magnitude if
// quantization happens exactly once, at that final step (Edge.Weight is kept
// as a float for the same reason; see DESIGN.md).
type Ref struct {
	Emission float64
	sentinel bool
}

// SentinelRef returns the Ref used for the synthetic source/target nodes.
func SentinelRef() Ref { return Ref{sentinel: true} }

// IsSentinel reports whether this ref stands for the synthetic source or
// target rather than a real candidate.
func (r Ref) IsSentinel() bool { return r.sentinel }

// Edge is the weight attached to a directed candidate-graph edge: a
// transition cost in [0,1], assigned during reachability resolution and
// zero while freshly woven. Kept as a float for
// the same reason as Ref.Emission: quantization to u32 happens once, inside
// the collapse step's cost function.
type Edge struct {
	Weight float64
}

// Zero is the placeholder weight assigned during weaving, before
// reachability resolution fills in the real transition cost.
func Zero() Edge { return Edge{Weight: 0} }

// Layer is one observation's candidate set: an ordered sequence of
// candidate ids plus the observation point they were generated from.
type Layer struct {
	Nodes  []ID
	Origin orb.Point
}

// Layers is the ordered sequence of per-observation layers.
type Layers []Layer

// Geometry returns the origin points of every layer, in order.
func (ls Layers) Geometry() orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, l := range ls {
		out[i] = l.Origin
	}
	return out
}
