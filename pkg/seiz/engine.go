package seiz

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-seiz/pkg/parallel"
)

// step computes the next state store from the frozen current one in a
// single synchronous update: every read comes from s.states, every write
// goes to s.scratch, and the buffers swap at the end. Node transitions are
// independent given the snapshot, so the node range may be partitioned
// across a pool without changing the result (each node draws only from its
// own (seed, node, step) sub-stream).
//
// Draw order within a node's stream is fixed: neighbor choice, contact
// engagement, contact outcome for susceptible nodes; the policy's draws for
// exposed and infected nodes. Skeptic is absorbing and draws nothing.
func (s *Simulator) step(pool *parallel.Pool) {
	n := s.graph.NumNodes()
	var trans [numCompartments][numCompartments]int

	if pool != nil && pool.NumChunks(n) > 1 {
		local := make([][numCompartments][numCompartments]int, pool.NumChunks(n))
		pool.ForEachChunk(n, func(chunk, lo, hi int) {
			s.stepRange(lo, hi, &local[chunk])
		})
		for _, lt := range local {
			for from := 0; from < numCompartments; from++ {
				for to := 0; to < numCompartments; to++ {
					trans[from][to] += lt[from][to]
				}
			}
		}
	} else {
		s.stepRange(0, n, &trans)
	}

	s.states, s.scratch = s.scratch, s.states
	for from := 0; from < numCompartments; from++ {
		for to := 0; to < numCompartments; to++ {
			if from == to {
				continue
			}
			moved := trans[from][to]
			s.counts[from] -= moved
			s.counts[to] += moved
		}
	}
	s.lastTrans = trans
}

// stepRange evaluates nodes [lo, hi) against the frozen snapshot,
// accumulating the transition matrix for the range.
func (s *Simulator) stepRange(lo, hi int, trans *[numCompartments][numCompartments]int) {
	cur, next := s.states, s.scratch
	for i := lo; i < hi; i++ {
		id := uint64(i)
		state := cur[i]

		var out Compartment
		switch state {
		case Susceptible:
			out = s.contactOutcome(id, cur, subStream(s.seed, id, s.stepIdx))
		case Exposed:
			out = s.policy.nextExposed(subStream(s.seed, id, s.stepIdx))
		case Infected:
			out = s.policy.nextInfected(id, subStream(s.seed, id, s.stepIdx))
		default:
			out = Skeptic
		}

		next[i] = out
		trans[state][out]++
	}
}

// contactOutcome applies the shared contact rule for a susceptible node:
// sample one neighbor uniformly, observe its snapshot compartment, and roll
// the corresponding contact transition. Isolated nodes have no contact
// event and stay susceptible.
func (s *Simulator) contactOutcome(id uint64, cur []Compartment, rng *rand.Rand) Compartment {
	deg := s.graph.Degree(id)
	if deg == 0 {
		return Susceptible
	}
	neighbor := s.graph.Neighbors(id)[rng.IntN(deg)]

	switch cur[neighbor] {
	case Infected:
		if rng.Float64() < s.beta {
			if rng.Float64() < s.p {
				return Infected
			}
			return Exposed
		}
	case Skeptic:
		if rng.Float64() < s.b {
			if rng.Float64() < s.l {
				return Skeptic
			}
			return Exposed
		}
	}
	return Susceptible
}
