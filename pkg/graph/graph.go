// Package graph provides the immutable, in-memory undirected graph the
// simulation runs on. Nodes are dense uint64 IDs in [0, NumNodes).
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// Common sentinel errors
var (
	ErrNoNodes     = errors.New("graph has no nodes")
	ErrSelfLoop    = errors.New("self-loops are not allowed")
	ErrNodeRange   = errors.New("node ID out of range")
	ErrBadEdgeList = errors.New("malformed edge list")
)

// Graph is an immutable undirected graph. Once built, the node and edge
// sets never change, so readers need no synchronization.
type Graph struct {
	adj      [][]uint64
	numEdges int
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.adj)
}

// NumEdges returns the number of undirected edges in the graph.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Degree returns the number of neighbors of the given node.
func (g *Graph) Degree(id uint64) int {
	return len(g.adj[id])
}

// Neighbors returns the adjacency list of the given node in ascending ID
// order. The returned slice is shared with the graph and must not be
// modified by the caller.
func (g *Graph) Neighbors(id uint64) []uint64 {
	return g.adj[id]
}

// Builder accumulates edges before freezing them into a Graph.
type Builder struct {
	n   int
	adj []map[uint64]struct{}
}

// NewBuilder creates a builder for a graph with n nodes, IDs 0..n-1.
func NewBuilder(n int) (*Builder, error) {
	if n <= 0 {
		return nil, fmt.Errorf("graph builder: %w (n=%d)", ErrNoNodes, n)
	}
	adj := make([]map[uint64]struct{}, n)
	for i := range adj {
		adj[i] = make(map[uint64]struct{})
	}
	return &Builder{n: n, adj: adj}, nil
}

// AddEdge adds the undirected edge {u, v}. Parallel edges are collapsed
// silently; self-loops are rejected.
func (b *Builder) AddEdge(u, v uint64) error {
	if u == v {
		return fmt.Errorf("edge {%d,%d}: %w", u, v, ErrSelfLoop)
	}
	if u >= uint64(b.n) || v >= uint64(b.n) {
		return fmt.Errorf("edge {%d,%d}: %w (n=%d)", u, v, ErrNodeRange, b.n)
	}
	b.adj[u][v] = struct{}{}
	b.adj[v][u] = struct{}{}
	return nil
}

// Build freezes the accumulated edges into an immutable Graph. Neighbor
// lists are sorted so iteration order is stable across runs.
func (b *Builder) Build() *Graph {
	adj := make([][]uint64, b.n)
	edges := 0
	for i, set := range b.adj {
		list := make([]uint64, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Slice(list, func(x, y int) bool { return list[x] < list[y] })
		adj[i] = list
		edges += len(list)
	}
	return &Graph{adj: adj, numEdges: edges / 2}
}
