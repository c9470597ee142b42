package seiz

import "math/rand/v2"

// Exported model-type names, kept stable because they appear verbatim in
// the persisted record format.
const (
	ModelTypeBase           = "SEIZModel"
	ModelTypeBasicModerator = "SEIZBMModel"
	ModelTypeSmartModerator = "SEIZSMModel"
)

// moderationPolicy decides the per-step fate of exposed and infected nodes.
// The contact rule for susceptible nodes is shared by all variants; the
// policies own everything downstream of it. A node moves at most once per
// step, so each method returns exactly one next compartment.
type moderationPolicy interface {
	modelType() string
	nextExposed(rng *rand.Rand) Compartment
	nextInfected(id uint64, rng *rand.Rand) Compartment
}

// basePolicy is plain SEIZ: E -> I incubation and I -> E relapse.
type basePolicy struct {
	rho, eps float64
}

func (p *basePolicy) modelType() string { return ModelTypeBase }

func (p *basePolicy) nextExposed(rng *rand.Rand) Compartment {
	if rng.Float64() < p.rho {
		return Infected
	}
	return Exposed
}

func (p *basePolicy) nextInfected(_ uint64, rng *rand.Rand) Compartment {
	if rng.Float64() < p.eps {
		return Exposed
	}
	return Infected
}

// basicModeratorPolicy intervenes on infected nodes with probability mu.
// A successful intervention converts the spreader into a skeptic. The
// intervention check comes first; only unmoderated nodes are subject to
// the base eps relapse.
type basicModeratorPolicy struct {
	rho, eps, mu, m float64
}

func (p *basicModeratorPolicy) modelType() string { return ModelTypeBasicModerator }

func (p *basicModeratorPolicy) nextExposed(rng *rand.Rand) Compartment {
	if rng.Float64() < p.rho {
		return Infected
	}
	return Exposed
}

func (p *basicModeratorPolicy) nextInfected(_ uint64, rng *rand.Rand) Compartment {
	if rng.Float64() < p.mu {
		if rng.Float64() < p.m {
			return Skeptic
		}
		return Infected // intervention failed
	}
	if rng.Float64() < p.eps {
		return Exposed
	}
	return Infected
}

// smartModeratorPolicy scores n simulated messages per infected node per
// step against the node's toxicity profile. Nodes whose toxic-message count
// reaches theta are flagged and demoted to E with probability eta. Exposed
// nodes drain to Z with probability lambda each step regardless of flags.
// There is no direct eps relapse in this variant.
type smartModeratorPolicy struct {
	rho, t, eta, lambda float64
	n, theta            int

	// profiles is assigned by InitializeStates, indexed by node ID.
	profiles []ToxicityProfile
}

func (p *smartModeratorPolicy) modelType() string { return ModelTypeSmartModerator }

func (p *smartModeratorPolicy) nextExposed(rng *rand.Rand) Compartment {
	if rng.Float64() < p.rho {
		return Infected
	}
	if rng.Float64() < p.lambda {
		return Skeptic
	}
	return Exposed
}

func (p *smartModeratorPolicy) nextInfected(id uint64, rng *rand.Rand) Compartment {
	toxic := 0
	for j := 0; j < p.n; j++ {
		if p.profiles[id].score(rng) >= p.t {
			toxic++
		}
	}
	if toxic >= p.theta && rng.Float64() < p.eta {
		return Exposed
	}
	return Infected
}
