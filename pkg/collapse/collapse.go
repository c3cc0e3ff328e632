// Package collapse implements the final solver step: extracting one
// candidate per layer via shortest path through the woven candidate graph,
// from the synthetic source to the synthetic target.
//
// Grounded on map_router's pkg/routing/engine.go bidirectional-Dijkstra
// loop structure (adapted here to a single-direction, zero-heuristic
// search — equivalent to A* with a constant-zero heuristic) and the
// original's transition::entity::collapse.
package collapse

import (
	"container/heap"
	"errors"

	"github.com/routers-org/routers/pkg/candidate"
	"github.com/routers-org/routers/pkg/reach"
	"github.com/routers-org/routers/pkg/roadgraph"
)

// Scale is the quantization constant applied to [0,1] float costs before
// they are summed as integers, large enough to preserve rank ordering
// under u32 truncation. The open question of its exact value is resolved in DESIGN.md;
// 1<<16 gives ~65k distinguishable cost levels per unit step, comfortably
// finer than floating-point noise in the emission/transition formulas.
const Scale = 1 << 16

// ErrNoPathFound is returned when no route exists from source to target in
// the candidate graph.
var ErrNoPathFound = errors.New("collapse: no path found from source to target")

// ErrReadLockFailed is returned when the candidate graph could not be
// locked for the duration of the search. Go has no lock poisoning, so in
// practice this path is reserved for a nil arena rather than a panicked
// writer.
var ErrReadLockFailed = errors.New("collapse: candidate graph read lock failed")

// CollapsedPath is the solver's raw output: the winning route through the
// candidate graph, its total quantized cost, and the Reachable road path
// backing each step.
type CollapsedPath[E roadgraph.Entry[E]] struct {
	Cost       uint32
	Route      []candidate.ID
	Reached    []reach.Reachable[E]
	Candidates *candidate.Candidates[E]
}

// stepCost computes the quantized edge cost for a candidate-graph
// traversal into target with transition weight edgeWeight:
//
//	step_cost(s, t) = u32(target.emission * 0.4 * SCALE) + u32(edge.weight * 0.6 * SCALE)
func stepCost(targetEmission float64, edgeWeight float64) uint32 {
	emissionPart := uint32(targetEmission * 0.4 * Scale)
	transitionPart := uint32(edgeWeight * 0.6 * Scale)
	return emissionPart + transitionPart
}

type heapItem struct {
	node candidate.ID
	cost uint32
}

type minHeap []heapItem

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ReachableKey mirrors the original's Reachable::hash(): (source.index(),
// target.index()), the key callers populate when handing reachability
// results back into Collapse.
type ReachableKey struct {
	A, B candidate.ID
}

// Resolver supplies the transition weight and backing Reachable road path
// for one real-candidate-to-real-candidate edge. It is called at most once
// per edge the search actually relaxes, which is what lets a lazy solver
// defer reachability work to only the edges a search visits rather than
// every woven pair.
type Resolver[E roadgraph.Entry[E]] func(from, to candidate.ID) (weight float64, reached reach.Reachable[E], ok bool)

// Collapse runs a zero-heuristic Dijkstra (equivalent to A* with a
// constant-zero heuristic) from arena.Source() to
// arena.Target(), reading each edge's already-resolved transition weight
// from the arena and its backing road path from reached. Used by the
// forward solver variant that resolves every edge up front.
func Collapse[E roadgraph.Entry[E]](
	arena *candidate.Candidates[E],
	reached map[ReachableKey]reach.Reachable[E],
) (CollapsedPath[E], error) {
	resolve := func(from, to candidate.ID) (float64, reach.Reachable[E], bool) {
		w, ok := arena.EdgeWeight(from, to)
		if !ok {
			return 0, reach.Reachable[E]{}, false
		}
		return w.Weight, reached[ReachableKey{A: from, B: to}], true
	}
	return CollapseWithResolver[E](arena, resolve)
}

// CollapseWithResolver is Collapse's core search. It holds the candidate
// graph's read lock for the whole search and calls resolve
// exactly once per real-to-real edge it relaxes; edges touching the
// synthetic source/target sentinels cost 0 and never invoke resolve.
func CollapseWithResolver[E roadgraph.Entry[E]](
	arena *candidate.Candidates[E],
	resolve Resolver[E],
) (CollapsedPath[E], error) {
	if arena == nil {
		return CollapsedPath[E]{}, ErrReadLockFailed
	}

	arena.RLock()
	defer arena.RUnlock()

	source := arena.Source()
	target := arena.Target()

	dist := map[candidate.ID]uint32{source: 0}
	parent := map[candidate.ID]candidate.ID{}
	backing := map[candidate.ID]reach.Reachable[E]{}

	pq := &minHeap{{node: source, cost: 0}}
	heap.Init(pq)

	visited := map[candidate.ID]bool{}

	for pq.Len() > 0 {
		top := heap.Pop(pq).(heapItem)
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == target {
			break
		}

		uRef, ok := arena.Ref(u)
		if !ok {
			continue
		}

		for _, succ := range arena.NextLayerLocked(u) {
			targetRef, ok := arena.Ref(succ.To)
			if !ok {
				continue
			}

			var step uint32
			var r reach.Reachable[E]
			if uRef.IsSentinel() || targetRef.IsSentinel() {
				step = 0
			} else {
				weight, reachedEdge, ok := resolve(u, succ.To)
				if !ok {
					continue
				}
				step = stepCost(targetRef.Emission, weight)
				r = reachedEdge
			}

			newCost := top.cost + step
			if existing, ok := dist[succ.To]; ok && existing <= newCost {
				continue
			}
			dist[succ.To] = newCost
			parent[succ.To] = u
			backing[succ.To] = r
			heap.Push(pq, heapItem{node: succ.To, cost: newCost})
		}
	}

	if !visited[target] {
		return CollapsedPath[E]{}, ErrNoPathFound
	}

	route := make([]candidate.ID, 0)
	for cur := target; ; {
		route = append(route, cur)
		if cur == source {
			break
		}
		p, ok := parent[cur]
		if !ok {
			return CollapsedPath[E]{}, ErrNoPathFound
		}
		cur = p
	}
	reverseIDs(route)

	realRoute := make([]candidate.ID, 0, len(route))
	for _, id := range route {
		if id == source || id == target {
			continue
		}
		realRoute = append(realRoute, id)
	}

	reachedPath := make([]reach.Reachable[E], 0, len(realRoute))
	for i := 1; i < len(realRoute); i++ {
		reachedPath = append(reachedPath, backing[realRoute[i]])
	}

	return CollapsedPath[E]{
		Cost:       dist[target],
		Route:      realRoute,
		Reached:    reachedPath,
		Candidates: arena,
	}, nil
}

func reverseIDs(s []candidate.ID) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
