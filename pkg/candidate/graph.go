package candidate

import (
	"sync"

	"github.com/routers-org/routers/pkg/roadgraph"
)

// adjacencyEdge is one outgoing edge of the candidate graph's internal
// adjacency list.
type adjacencyEdge struct {
	to     ID
	weight Edge
}

// Candidates is the candidate-graph arena: a directed graph of Ref/Edge
// under a single-writer/multi-reader lock, a side table mapping ids back
// to full Candidate values, and the two synthetic endpoints bracketing all
// real candidates.
type Candidates[E roadgraph.Entry[E]] struct {
	mu sync.RWMutex

	refs      map[ID]Ref
	adjacency map[ID][]adjacencyEdge
	lookup    map[ID]Candidate[E]

	source ID
	target ID

	nextID ID
}

// New returns an empty candidate arena with its two sentinel endpoints
// already registered.
func New[E roadgraph.Entry[E]]() *Candidates[E] {
	c := &Candidates[E]{
		refs:      make(map[ID]Ref),
		adjacency: make(map[ID][]adjacencyEdge),
		lookup:    make(map[ID]Candidate[E]),
	}
	c.source = c.allocate(SentinelRef())
	c.target = c.allocate(SentinelRef())
	return c
}

func (c *Candidates[E]) allocate(ref Ref) ID {
	id := c.nextID
	c.nextID++
	c.refs[id] = ref
	return id
}

// Source returns the synthetic node preceding every layer-0 candidate.
func (c *Candidates[E]) Source() ID { return c.source }

// Target returns the synthetic node following every last-layer candidate.
func (c *Candidates[E]) Target() ID { return c.target }

// Insert registers a real candidate and returns its new id.
func (c *Candidates[E]) Insert(cand Candidate[E]) ID {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.allocate(Ref{Emission: cand.EmissionCost})
	c.lookup[id] = cand
	return id
}

// Candidate looks up the full candidate value for a real node id.
func (c *Candidates[E]) Candidate(id ID) (Candidate[E], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.lookup[id]
	return v, ok
}

// Ref looks up the lightweight graph-resident value for any node id,
// including the sentinels.
func (c *Candidates[E]) Ref(id ID) (Ref, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.refs[id]
	return v, ok
}

// connect adds a directed edge a -> b with the given weight. Callers must
// hold the write lock.
func (c *Candidates[E]) connect(a, b ID, w Edge) {
	c.adjacency[a] = append(c.adjacency[a], adjacencyEdge{to: b, weight: w})
}

// Attach adds a zero-weight edge from candidate to every node in layer.
func (c *Candidates[E]) Attach(from ID, layer []ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, to := range layer {
		c.connect(from, to, Zero())
	}
}

// AttachAll adds a zero-weight edge from every node in from to to.
func (c *Candidates[E]) AttachAll(from []ID, to ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range from {
		c.connect(f, to, Zero())
	}
}

// Weave links every consecutive pair of layers with zero-weight edges from
// every node in the earlier layer to every node in the later layer, then
// brackets the whole structure with the synthetic source/target. It is O(sum |Layer_i| * |Layer_{i+1}|).
func (c *Candidates[E]) Weave(layers Layers) {
	for i := 0; i+1 < len(layers); i++ {
		a, b := layers[i].Nodes, layers[i+1].Nodes
		c.mu.Lock()
		for _, from := range a {
			for _, to := range b {
				c.connect(from, to, Zero())
			}
		}
		c.mu.Unlock()
	}

	if len(layers) == 0 {
		return
	}
	c.Attach(c.source, layers[0].Nodes)
	c.AttachAll(layers[len(layers)-1].Nodes, c.target)
}

// Successor is one outgoing edge of a candidate-graph node, as returned to
// callers outside this package.
type Successor struct {
	To     ID
	Weight Edge
}

// NextLayer returns the outgoing edges of node, as (target id, edge
// weight) pairs, under a read lock.
func (c *Candidates[E]) NextLayer(node ID) []Successor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextLayerLocked(node)
}

func (c *Candidates[E]) nextLayerLocked(node ID) []Successor {
	edges := c.adjacency[node]
	out := make([]Successor, len(edges))
	for i, e := range edges {
		out[i] = Successor{To: e.to, Weight: e.weight}
	}
	return out
}

// EdgeWeight returns the weight of the directed edge a -> b, if one
// exists.
func (c *Candidates[E]) EdgeWeight(a, b ID) (Edge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.adjacency[a] {
		if e.to == b {
			return e.weight, true
		}
	}
	return Edge{}, false
}

// SetEdgeWeight overwrites the weight of the directed edge a -> b. Used
// during reachability resolution to replace the placeholder zero weight
// with the computed transition cost.
func (c *Candidates[E]) SetEdgeWeight(a, b ID, w Edge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	edges := c.adjacency[a]
	for i := range edges {
		if edges[i].to == b {
			edges[i].weight = w
			return
		}
	}
}

// RLock/RUnlock expose the read lock directly so the collapse step can hold it across a whole shortest-path search rather than
// per-edge.
func (c *Candidates[E]) RLock()   { c.mu.RLock() }
func (c *Candidates[E]) RUnlock() { c.mu.RUnlock() }

// NextLayerLocked is NextLayer's counterpart for callers already holding
// the read lock via RLock.
func (c *Candidates[E]) NextLayerLocked(node ID) []Successor {
	return c.nextLayerLocked(node)
}
