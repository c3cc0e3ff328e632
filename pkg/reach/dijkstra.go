// Package reach implements per-source reachability: a bounded Dijkstra
// search building a single-source shortest-path tree, backed by the road
// graph's shared successors cache, plus the reachability resolution that
// turns two candidates into a Reachable road path.
//
// Grounded on map_router's pkg/routing/dijkstra.go (MinHeap: a
// concrete-typed binary heap avoiding interface boxing) and the original's
// transition::primitives::algorithms::dijkstra module, adapted from a lazy
// Rust iterator into a direct tree-builder since Go has no native
// generators.
package reach

import (
	"container/heap"

	"github.com/routers-org/routers/pkg/roadgraph"
)

// WeightAndDistance is the priority-queue ordering key pair, ordered
// lexicographically by weight then by distance.
type WeightAndDistance struct {
	Weight   uint32
	Distance float64
}

// Less reports whether w sorts before o (smaller weight first, distance as
// tiebreak).
func (w WeightAndDistance) Less(o WeightAndDistance) bool {
	if w.Weight != o.Weight {
		return w.Weight < o.Weight
	}
	return w.Distance < o.Distance
}

type heapItem[E comparable] struct {
	node E
	cost WeightAndDistance
}

// minHeap is a concrete-typed binary min-heap over heapItem, mirroring
// map_router's MinHeap (avoids boxing items behind an interface on every
// push/pop).
type minHeap[E comparable] []heapItem[E]

func (h minHeap[E]) Len() int            { return len(h) }
func (h minHeap[E]) Less(i, j int) bool  { return h[i].cost.Less(h[j].cost) }
func (h minHeap[E]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap[E]) Push(x interface{}) { *h = append(*h, x.(heapItem[E])) }
func (h *minHeap[E]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Successor is a single outgoing, already-admissibility-filtered edge as
// seen by the bounded search.
type Successor[E comparable] struct {
	Target   E
	Weight   uint32
	Distance float64
}

// Bound is a tree-construction budget: exploration stops expanding a node
// once its cumulative cost exceeds MaxCost, preventing runaway exploration on
// sparse networks.
type Bound struct {
	MaxCost uint32
}

// DefaultBound caps a tree's cumulative edge weight at 20,000, in the same
// weight units as road edges (20 km only when edge weights are meters). The
// cap applies to weight alone; cumulative distance is tracked for the
// tie-break and is not capped.
var DefaultBound = Bound{MaxCost: 20_000}

// BoundedTree runs a single-source Dijkstra from source, expanding via
// successorsOf, and returns a parent-map of every node reached within
// bound.MaxCost. The source maps to
// (source, 0) — its own sentinel parent — so path reconstruction can detect
// having reached the root.
func BoundedTree[E comparable](
	source E,
	bound Bound,
	successorsOf func(E) []Successor[E],
) map[E]roadgraph.ParentEntry[E] {
	tree := map[E]roadgraph.ParentEntry[E]{
		source: {Parent: source, Cost: 0},
	}
	best := map[E]uint32{source: 0}

	pq := &minHeap[E]{{node: source, cost: WeightAndDistance{Weight: 0}}}
	heap.Init(pq)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(heapItem[E])
		u := top.node

		if c, ok := best[u]; ok && top.cost.Weight > c {
			continue // stale entry
		}

		for _, s := range successorsOf(u) {
			newCost := top.cost.Weight + s.Weight
			if newCost > bound.MaxCost {
				continue
			}
			if existing, ok := best[s.Target]; ok && existing <= newCost {
				continue
			}

			newDistance := top.cost.Distance + s.Distance
			best[s.Target] = newCost
			tree[s.Target] = roadgraph.ParentEntry[E]{Parent: u, Cost: newCost}
			heap.Push(pq, heapItem[E]{node: s.Target, cost: WeightAndDistance{Weight: newCost, Distance: newDistance}})
		}
	}

	return tree
}

// PathBuilder walks a parent-map backward from target to source and
// returns the path in [source, ..., target] order, or false if the walk
// does not terminate at source within maxSteps hops.
//
// maxSteps bounds the walk against a corrupted or cyclic parent-map; it
// should be set to at least the tree's node count.
func PathBuilder[E comparable](tree map[E]roadgraph.ParentEntry[E], source, target E, maxSteps int) ([]E, bool) {
	if _, ok := tree[target]; !ok {
		return nil, false
	}

	rev := make([]E, 0, 8)
	cur := target
	for steps := 0; steps <= maxSteps; steps++ {
		rev = append(rev, cur)
		if cur == source {
			reverse(rev)
			return rev, true
		}
		entry, ok := tree[cur]
		if !ok {
			return nil, false
		}
		if entry.Parent == cur {
			// Reached a root that isn't our source.
			return nil, false
		}
		cur = entry.Parent
	}
	return nil, false
}

func reverse[E any](s []E) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
