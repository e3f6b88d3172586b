// Package search runs graph searches (A*, Dijkstra, BFS, DFS) over a
// graph.Graph behind one construct, Search, Path contract.
//
// Every algorithm is a disposable value: build it with the graph, source and
// target, call Search, then read Path or SearchTree. Search never returns an
// error; an unreachable target is reported by Found being false and an empty
// path.
package search

import (
	"slices"

	"navmesh-planner/graph"
	"navmesh-planner/pqueue"
)

// Searcher is the contract shared by all algorithms in this package.
type Searcher interface {
	// Search runs the algorithm from scratch and reports whether the target
	// was reached.
	Search() bool
	// Path returns node indices from source to target, or nil.
	Path() []int
	// SearchTree returns the edges frozen into the shortest-path or
	// spanning tree, in the order they were settled.
	SearchTree() []graph.Edge
	// Clear drops all search state.
	Clear()
}

// entry is a priority queue element. seq breaks cost ties so that entries of
// equal cost pop in insertion order.
type entry struct {
	index int
	cost  float64
	seq   uint64
}

type frontierQueue struct {
	q   *pqueue.Queue[entry]
	seq uint64
}

func newFrontierQueue() *frontierQueue {
	return &frontierQueue{q: pqueue.NewFunc(func(a, b entry) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.seq < b.seq
	})}
}

func (f *frontierQueue) push(index int, cost float64) {
	f.q.Push(entry{index: index, cost: cost, seq: f.seq})
	f.seq++
}

func (f *frontierQueue) pop() (entry, bool) {
	return f.q.Pop()
}

// walkBack reconstructs a path by following parent links from target to
// source and reversing the result. It returns nil if the chain breaks or
// loops.
func walkBack(source, target int, parent func(int) (int, bool), limit int) []int {
	path := []int{target}
	current := target
	for current != source {
		if len(path) > limit+1 {
			return nil
		}
		p, ok := parent(current)
		if !ok {
			return nil
		}
		current = p
		path = append(path, current)
	}
	slices.Reverse(path)
	return path
}
