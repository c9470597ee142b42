// Package parallel provides a small bounded worker pool for fanning
// per-node work out across CPUs within a simulation step.
package parallel

import (
	"sync"
)

// Pool manages a fixed set of worker goroutines.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
}

// NewPool creates a pool with the given number of workers (minimum 1).
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// ForEachChunk splits [0, n) into one contiguous chunk per worker and runs
// fn(chunk, lo, hi) for each on the pool, blocking until every chunk is
// done. Chunk boundaries depend only on n and the worker count, so callers
// that key their work on index ranges get reproducible partitions.
func (p *Pool) ForEachChunk(n int, fn func(chunk, lo, hi int)) {
	if n <= 0 {
		return
	}
	chunks := p.workers
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		lo := c * size
		hi := lo + size
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		c, lo, hi := c, lo, hi
		wg.Add(1)
		p.tasks <- func() {
			defer wg.Done()
			fn(c, lo, hi)
		}
	}
	wg.Wait()
}

// NumChunks returns how many chunks ForEachChunk will use for n items.
func (p *Pool) NumChunks(n int) int {
	if n <= 0 {
		return 0
	}
	if p.workers > n {
		return n
	}
	return p.workers
}

// Close shuts the pool down after all queued tasks finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
