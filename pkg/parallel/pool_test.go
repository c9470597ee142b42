package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPool_MinimumWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() != 1 {
		t.Errorf("Expected 1 worker, got %d", p.Workers())
	}
}

func TestForEachChunk_CoversRangeExactlyOnce(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 1003
	var hits [n]int32
	p.ForEachChunk(n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("Index %d visited %d times", i, h)
		}
	}
}

func TestForEachChunk_StablePartition(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	collect := func() [][2]int {
		bounds := make([][2]int, p.NumChunks(100))
		p.ForEachChunk(100, func(chunk, lo, hi int) {
			bounds[chunk] = [2]int{lo, hi}
		})
		return bounds
	}

	first := collect()
	second := collect()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Chunk %d bounds changed: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestForEachChunk_FewerItemsThanWorkers(t *testing.T) {
	p := NewPool(8)
	defer p.Close()

	if got := p.NumChunks(3); got != 3 {
		t.Errorf("Expected 3 chunks for 3 items, got %d", got)
	}
	var total int64
	p.ForEachChunk(3, func(_, lo, hi int) {
		atomic.AddInt64(&total, int64(hi-lo))
	})
	if total != 3 {
		t.Errorf("Chunks covered %d items, want 3", total)
	}
}

func TestForEachChunk_EmptyRange(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	called := false
	p.ForEachChunk(0, func(_, _, _ int) { called = true })
	if called {
		t.Error("Callback fired for empty range")
	}
	if p.NumChunks(0) != 0 {
		t.Errorf("Expected 0 chunks for empty range, got %d", p.NumChunks(0))
	}
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	p := NewPool(2)
	p.ForEachChunk(10, func(_, _, _ int) {})
	p.Close()
	p.Close()
}
