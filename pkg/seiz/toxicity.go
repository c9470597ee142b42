package seiz

import "math/rand/v2"

// Dark Triad trait weights and the blend between the deterministic trait
// component and the per-message noise draw. Scores stay in [0,1] because
// both components do.
const (
	traitWeightMach  = 0.4
	traitWeightNarc  = 0.3
	traitWeightPsych = 0.3
	traitBlend       = 0.5
)

// ToxicityProfile holds a node's Dark Triad traits, each in [0,1]. Profiles
// are drawn once at initialization and never change.
type ToxicityProfile struct {
	Machiavellianism float64 `json:"machiavellianism"`
	Narcissism       float64 `json:"narcissism"`
	Psychopathy      float64 `json:"psychopathy"`
}

// drawProfile samples a profile. Trait draw order is fixed.
func drawProfile(rng *rand.Rand) ToxicityProfile {
	return ToxicityProfile{
		Machiavellianism: rng.Float64(),
		Narcissism:       rng.Float64(),
		Psychopathy:      rng.Float64(),
	}
}

// score returns the toxicity of one simulated message: a blend of the
// weighted trait mean and a uniform draw from the node's step stream.
// Strictly increasing in every trait, reproducible for a fixed seed.
func (p ToxicityProfile) score(rng *rand.Rand) float64 {
	traits := traitWeightMach*p.Machiavellianism +
		traitWeightNarc*p.Narcissism +
		traitWeightPsych*p.Psychopathy
	return traitBlend*traits + (1-traitBlend)*rng.Float64()
}
