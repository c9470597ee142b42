package graph

import (
	"errors"
	"strings"
	"testing"
)

func TestBuilder_RejectsEmptyGraph(t *testing.T) {
	if _, err := NewBuilder(0); !errors.Is(err, ErrNoNodes) {
		t.Errorf("Expected ErrNoNodes, got %v", err)
	}
	if _, err := NewBuilder(-5); !errors.Is(err, ErrNoNodes) {
		t.Errorf("Expected ErrNoNodes for negative n, got %v", err)
	}
}

func TestBuilder_RejectsSelfLoop(t *testing.T) {
	b, err := NewBuilder(3)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if err := b.AddEdge(1, 1); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("Expected ErrSelfLoop, got %v", err)
	}
}

func TestBuilder_RejectsOutOfRange(t *testing.T) {
	b, err := NewBuilder(3)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if err := b.AddEdge(0, 3); !errors.Is(err, ErrNodeRange) {
		t.Errorf("Expected ErrNodeRange, got %v", err)
	}
}

func TestBuilder_CollapsesParallelEdges(t *testing.T) {
	b, err := NewBuilder(2)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := b.AddEdge(0, 1); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	g := b.Build()
	if g.NumEdges() != 1 {
		t.Errorf("Expected 1 edge after dedup, got %d", g.NumEdges())
	}
	if g.Degree(0) != 1 || g.Degree(1) != 1 {
		t.Errorf("Expected degree 1 on both endpoints, got %d and %d", g.Degree(0), g.Degree(1))
	}
}

func TestGraph_NeighborsSorted(t *testing.T) {
	b, err := NewBuilder(5)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	for _, v := range []uint64{4, 1, 3, 2} {
		if err := b.AddEdge(0, v); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	g := b.Build()
	nbs := g.Neighbors(0)
	for i := 1; i < len(nbs); i++ {
		if nbs[i-1] >= nbs[i] {
			t.Fatalf("Neighbors not sorted: %v", nbs)
		}
	}
}

func TestReadEdgeList(t *testing.T) {
	input := `# a triangle plus a pendant
0 1
1 2

2 0
2 3
`
	g, err := ReadEdgeList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadEdgeList failed: %v", err)
	}
	if g.NumNodes() != 4 {
		t.Errorf("Expected 4 nodes, got %d", g.NumNodes())
	}
	if g.NumEdges() != 4 {
		t.Errorf("Expected 4 edges, got %d", g.NumEdges())
	}
	if g.Degree(2) != 3 {
		t.Errorf("Expected degree 3 for node 2, got %d", g.Degree(2))
	}
}

func TestReadEdgeList_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"too many fields", "0 1 2\n"},
		{"not a number", "a b\n"},
		{"empty", "# only comments\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadEdgeList(strings.NewReader(tc.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
