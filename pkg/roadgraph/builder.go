package roadgraph

// RawEdge is a single directed edge as supplied to Build, before it is
// indexed into a Graph. Grounded on map_router's pkg/graph/builder.go
// compactEdge/RawEdge shape, generalized from osm.NodeID to a generic E and
// with OSM-specific shape-point geometry dropped; ingestion from binary map
// formats is an external collaborator, not this package's concern.
type RawEdge[E Entry[E]] struct {
	Source    E
	Target    E
	Weight    uint32
	Direction Direction
	SourceLat float64
	SourceLon float64
	TargetLat float64
	TargetLon float64
	EdgeIndex uint32
}

// Build assembles a Graph from a flat edge list and a per-edge metadata
// map keyed by the direction-agnostic edge index, populating both R-tree
// indexes. It replaces map_router's OSM-ingestion build path (out of scope)
// with a plain edge-list builder suited to the synthetic fixtures this
// module's tests construct.
func Build[E Entry[E], M Metadata[R], R any](edges []RawEdge[E], meta map[uint32]M) *Graph[E, M, R] {
	g := New[E, M, R]()

	for idx, re := range edges {
		if _, ok := g.nodes[re.Source]; !ok {
			g.nodes[re.Source] = Node[E]{ID: re.Source, Lat: re.SourceLat, Lon: re.SourceLon}
			g.nodeIndex.Insert(
				[2]float64{re.SourceLon, re.SourceLat},
				[2]float64{re.SourceLon, re.SourceLat},
				g.nodes[re.Source],
			)
		}
		if _, ok := g.nodes[re.Target]; !ok {
			g.nodes[re.Target] = Node[E]{ID: re.Target, Lat: re.TargetLat, Lon: re.TargetLon}
			g.nodeIndex.Insert(
				[2]float64{re.TargetLon, re.TargetLat},
				[2]float64{re.TargetLon, re.TargetLat},
				g.nodes[re.Target],
			)
		}

		edgeIdx := re.EdgeIndex
		if edgeIdx == 0 {
			edgeIdx = uint32(idx) + 1
		}
		id := EdgeID[E]{Index: edgeIdx, Direction: re.Direction}

		edge := Edge[E]{Source: re.Source, Target: re.Target, ID: id, Weight: re.Weight}
		g.adjacency[re.Source] = append(g.adjacency[re.Source], edge)

		fat := FatEdge[E]{
			Edge:      edge,
			SourceLat: re.SourceLat,
			SourceLon: re.SourceLon,
			TargetLat: re.TargetLat,
			TargetLon: re.TargetLon,
		}
		minLon, maxLon := re.SourceLon, re.TargetLon
		if minLon > maxLon {
			minLon, maxLon = maxLon, minLon
		}
		minLat, maxLat := re.SourceLat, re.TargetLat
		if minLat > maxLat {
			minLat, maxLat = maxLat, minLat
		}
		g.edgeIndex.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, fat)

		if m, ok := meta[edgeIdx]; ok {
			g.meta[edgeIdx] = m
		}
	}

	return g
}
