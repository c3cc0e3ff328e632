// Package scan implements the spatial-scan operations the candidate
// generator drives: querying the road graph's R-tree indexes for nodes and
// edges near an observation point, and projecting points onto edges.
//
// Grounded on the original's graph/traits/proximity implementation
// (square_box + locate_in_envelope + line_locate_point) and map_router's
// pkg/routing/snap.go projection math, rebuilt against
// github.com/tidwall/rtree instead of a hand-rolled grid index.
package scan

import (
	"github.com/paulmach/orb"

	"github.com/routers-org/routers/pkg/geo"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// Projected is a point projected onto a road edge, paired with the
// fractional position along that edge and the edge itself.
type Projected[E roadgraph.Entry[E]] struct {
	Point    orb.Point
	Edge     roadgraph.FatEdge[E]
	Fraction float64
}

// Edges returns every road edge whose bounding box intersects the geodesic
// envelope of radius d around p. Edges whose true closest point lies beyond
// d are still returned; callers filter by true
// distance themselves.
func Edges[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], p orb.Point, d float64) []roadgraph.FatEdge[E] {
	bound := geo.BoundingBox(p, d)

	var out []roadgraph.FatEdge[E]
	g.EdgeIndex().Search(
		[2]float64{bound.Min[0], bound.Min[1]},
		[2]float64{bound.Max[0], bound.Max[1]},
		func(_, _ [2]float64, data roadgraph.FatEdge[E]) bool {
			out = append(out, data)
			return true
		},
	)
	return out
}

// Nodes returns every road node within the geodesic envelope of radius d
// around p.
func Nodes[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], p orb.Point, d float64) []roadgraph.Node[E] {
	bound := geo.BoundingBox(p, d)

	var out []roadgraph.Node[E]
	g.NodeIndex().Search(
		[2]float64{bound.Min[0], bound.Min[1]},
		[2]float64{bound.Max[0], bound.Max[1]},
		func(_, _ [2]float64, data roadgraph.Node[E]) bool {
			out = append(out, data)
			return true
		},
	)
	return out
}

// Node returns the single nearest road node to p, searching an
// expanding sequence of envelopes until at least one candidate is found.
func Node[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], p orb.Point) (roadgraph.Node[E], bool) {
	radii := []float64{50, 200, 1000, 5000, 25000}

	var best roadgraph.Node[E]
	found := false
	bestDist := 0.0

	for _, radius := range radii {
		candidates := Nodes(g, p, radius)
		for _, n := range candidates {
			d := geo.Distance(p, orb.Point{n.Lon, n.Lat})
			if !found || d < bestDist {
				best, bestDist, found = n, d, true
			}
		}
		if found {
			return best, true
		}
	}
	return best, false
}

// NodesProjected returns, for every edge Edges reports for p and d, the
// projection of p onto that edge's line segment and the fraction along it.
func NodesProjected[E roadgraph.Entry[E], M roadgraph.Metadata[R], R any](g *roadgraph.Graph[E, M, R], p orb.Point, d float64) []Projected[E] {
	edges := Edges(g, p, d)

	out := make([]Projected[E], 0, len(edges))
	for _, e := range edges {
		a := orb.Point{e.SourceLon, e.SourceLat}
		b := orb.Point{e.TargetLon, e.TargetLat}

		projected, frac := geo.ProjectPointToSegment(p, a, b)
		out = append(out, Projected[E]{Point: projected, Edge: e, Fraction: frac})
	}
	return out
}
