// Package digraph provides a bidirectional adjacency-list graph over a
// dense node index space [0,N), used by cfg.Graph to represent the
// control-flow graph discovered by the tracer.
package digraph

import "sort"

// Graph is a bidirectional adjacency list: for every node i,
// Outgoing[i] and Incoming[i] are sorted, deduplicated node-index sets
// satisfying j ∈ Outgoing[i] ⇔ i ∈ Incoming[j]. Graph is immutable once
// built by Builder.Build; read-only traversals may share it freely.
type Graph struct {
	n        int
	outgoing [][]int
	incoming [][]int
}

// N returns the number of nodes.
func (g *Graph) N() int { return g.n }

// Outgoing returns the sorted, deduplicated set of nodes i has an edge
// to. Callers must not mutate the returned slice.
func (g *Graph) Outgoing(i int) []int { return g.outgoing[i] }

// Incoming returns the sorted, deduplicated set of nodes with an edge
// to i. Callers must not mutate the returned slice.
func (g *Graph) Incoming(i int) []int { return g.incoming[i] }

// Builder accumulates edges for a fixed node count before freezing them
// into an immutable Graph.
type Builder struct {
	n     int
	edges map[[2]int]struct{}
}

// NewBuilder returns a Builder for a graph with n nodes, indices [0,n).
func NewBuilder(n int) *Builder {
	return &Builder{n: n, edges: make(map[[2]int]struct{})}
}

// AddEdge records an edge from -> to. Both must be valid node indices.
// Duplicate edges are silently deduplicated.
func (b *Builder) AddEdge(from, to int) {
	if from < 0 || from >= b.n || to < 0 || to >= b.n {
		panic("digraph: edge endpoint out of range")
	}
	b.edges[[2]int{from, to}] = struct{}{}
}

// Build freezes the accumulated edges into a Graph.
func (b *Builder) Build() *Graph {
	g := &Graph{
		n:        b.n,
		outgoing: make([][]int, b.n),
		incoming: make([][]int, b.n),
	}
	for e := range b.edges {
		g.outgoing[e[0]] = append(g.outgoing[e[0]], e[1])
		g.incoming[e[1]] = append(g.incoming[e[1]], e[0])
	}
	for i := 0; i < b.n; i++ {
		sort.Ints(g.outgoing[i])
		sort.Ints(g.incoming[i])
	}
	return g
}
