package roadgraph

import (
	"github.com/tidwall/rtree"
)

// Graph is the consumed road-network container: a directed graph keyed by a generic
// node identifier E, per-edge metadata M, node/edge R-tree spatial indexes,
// and a shared successors cache.
//
// It is read-only once built; the matcher never locks it. This mirrors
// map_router's pkg/graph.Graph (a CSR adjacency structure), generalized from
// a concrete uint32 node id to a generic E so the solver can run against
// any caller-supplied identifier scheme. The CSR array layout itself is
// dropped in favor of a map-keyed adjacency list, since E is not guaranteed
// to be a dense small integer the way map_router's OSM-derived node index
// was.
type Graph[E Entry[E], M Metadata[R], R any] struct {
	nodes     map[E]Node[E]
	adjacency map[E][]Edge[E]
	meta      map[uint32]M

	nodeIndex rtree.RTreeG[Node[E]]
	edgeIndex rtree.RTreeG[FatEdge[E]]

	cache *SuccessorsCache[E]
}

// New returns an empty graph ready for Build to populate.
func New[E Entry[E], M Metadata[R], R any]() *Graph[E, M, R] {
	return &Graph[E, M, R]{
		nodes:     make(map[E]Node[E]),
		adjacency: make(map[E][]Edge[E]),
		meta:      make(map[uint32]M),
		cache:     NewSuccessorsCache[E](),
	}
}

// Size returns the number of nodes in the graph.
func (g *Graph[E, M, R]) Size() int {
	return len(g.nodes)
}

// GetPosition returns the position of node id, if present.
func (g *Graph[E, M, R]) GetPosition(id E) (lat, lon float64, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, 0, false
	}
	return n.Lat, n.Lon, true
}

// GetLine returns the positions of a sequence of node ids, in order.
// Missing ids are skipped.
func (g *Graph[E, M, R]) GetLine(ids []E) [][2]float64 {
	line := make([][2]float64, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.nodes[id]; ok {
			line = append(line, [2]float64{n.Lon, n.Lat})
		}
	}
	return line
}

// Edge returns the directed edge from source to target, if one exists.
func (g *Graph[E, M, R]) Edge(source, target E) (Edge[E], bool) {
	for _, e := range g.adjacency[source] {
		if e.Target == target {
			return e, true
		}
	}
	return Edge[E]{}, false
}

// Meta returns the edge attributes for a direction-agnostic edge index.
func (g *Graph[E, M, R]) Meta(id EdgeID[E]) (M, bool) {
	m, ok := g.meta[id.Index]
	return m, ok
}

// Successors returns the outgoing edges of node u. Callers filter by
// M.Accessible(runtime, dir) themselves.
func (g *Graph[E, M, R]) Successors(u E) []Edge[E] {
	return g.adjacency[u]
}

// Cache returns the shared successors cache.
func (g *Graph[E, M, R]) Cache() *SuccessorsCache[E] {
	return g.cache
}

// NodeIndex exposes the node R-tree for pkg/scan.
func (g *Graph[E, M, R]) NodeIndex() *rtree.RTreeG[Node[E]] {
	return &g.nodeIndex
}

// EdgeIndex exposes the edge R-tree for pkg/scan.
func (g *Graph[E, M, R]) EdgeIndex() *rtree.RTreeG[FatEdge[E]] {
	return &g.edgeIndex
}
