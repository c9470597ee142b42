package graph

import (
	"fmt"
	"math/rand/v2"
)

// Ring returns a cycle graph: node i is connected to (i±1) mod n.
// Requires n >= 3 so every node has two distinct neighbors.
func Ring(n int) (*Graph, error) {
	if n < 3 {
		return nil, fmt.Errorf("ring: need at least 3 nodes, got %d", n)
	}
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := b.AddEdge(uint64(i), uint64((i+1)%n)); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Complete returns the fully connected graph on n nodes.
func Complete(n int) (*Graph, error) {
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := b.AddEdge(uint64(i), uint64(j)); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}

// ErdosRenyi returns a G(n, p) random graph. Edge draws happen in a fixed
// (i, j) order from a PCG seeded with seed, so the same seed always yields
// the same graph.
func ErdosRenyi(n int, p float64, seed int64) (*Graph, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("erdos-renyi: edge probability %v outside [0,1]", p)
	}
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				if err := b.AddEdge(uint64(i), uint64(j)); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.Build(), nil
}

// BarabasiAlbert returns a preferential-attachment graph: starting from a
// complete seed of m+1 nodes, each new node attaches to m existing nodes
// chosen proportionally to their current degree. Deterministic for a fixed
// seed (stable attachment order, seeded PCG).
func BarabasiAlbert(n, m int, seed int64) (*Graph, error) {
	if m < 1 {
		return nil, fmt.Errorf("barabasi-albert: attachment count %d < 1", m)
	}
	if n <= m {
		return nil, fmt.Errorf("barabasi-albert: need more than %d nodes, got %d", m, n)
	}
	b, err := NewBuilder(n)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	// repeated holds one entry per edge endpoint; sampling from it is
	// sampling proportionally to degree.
	repeated := make([]uint64, 0, 2*m*n)
	for i := 0; i <= m; i++ {
		for j := i + 1; j <= m; j++ {
			if err := b.AddEdge(uint64(i), uint64(j)); err != nil {
				return nil, err
			}
			repeated = append(repeated, uint64(i), uint64(j))
		}
	}

	for v := m + 1; v < n; v++ {
		targets := make(map[uint64]struct{}, m)
		for len(targets) < m {
			targets[repeated[rng.IntN(len(repeated))]] = struct{}{}
		}
		// Attach in sorted order for reproducibility of the repeated list.
		ordered := make([]uint64, 0, m)
		for t := range targets {
			ordered = append(ordered, t)
		}
		for i := 0; i < len(ordered); i++ {
			for j := i + 1; j < len(ordered); j++ {
				if ordered[j] < ordered[i] {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
		}
		for _, t := range ordered {
			if err := b.AddEdge(uint64(v), t); err != nil {
				return nil, err
			}
			repeated = append(repeated, uint64(v), t)
		}
	}
	return b.Build(), nil
}
