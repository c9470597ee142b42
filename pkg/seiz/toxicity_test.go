package seiz

import "testing"

func TestToxicityScore_Bounds(t *testing.T) {
	profiles := []ToxicityProfile{
		{},
		{Machiavellianism: 1, Narcissism: 1, Psychopathy: 1},
		{Machiavellianism: 0.3, Narcissism: 0.9, Psychopathy: 0.1},
	}
	for _, p := range profiles {
		rng := subStream(99, 0, 0)
		for j := 0; j < 100; j++ {
			score := p.score(rng)
			if score < 0 || score > 1 {
				t.Fatalf("Score %v outside [0,1] for profile %+v", score, p)
			}
		}
	}
}

func TestToxicityScore_MonotonicInTraits(t *testing.T) {
	low := ToxicityProfile{Machiavellianism: 0.2, Narcissism: 0.2, Psychopathy: 0.2}
	high := ToxicityProfile{Machiavellianism: 0.8, Narcissism: 0.8, Psychopathy: 0.8}

	// Identical streams isolate the trait contribution from the noise draw.
	for j := uint64(0); j < 50; j++ {
		a := low.score(subStream(42, 1, j))
		b := high.score(subStream(42, 1, j))
		if b < a {
			t.Fatalf("Higher traits scored lower: %v < %v at stream %d", b, a, j)
		}
	}
}

func TestToxicityScore_Deterministic(t *testing.T) {
	p := ToxicityProfile{Machiavellianism: 0.5, Narcissism: 0.4, Psychopathy: 0.6}
	a := p.score(subStream(7, 3, 12))
	b := p.score(subStream(7, 3, 12))
	if a != b {
		t.Errorf("Same seed produced different scores: %v vs %v", a, b)
	}
}

func TestDrawProfile_Deterministic(t *testing.T) {
	a := drawProfile(subStream(5, 2, streamProfile))
	b := drawProfile(subStream(5, 2, streamProfile))
	if a != b {
		t.Errorf("Same seed produced different profiles: %+v vs %+v", a, b)
	}
	c := drawProfile(subStream(6, 2, streamProfile))
	if a == c {
		t.Error("Different seeds produced identical profiles")
	}
}

func TestSubStream_Independence(t *testing.T) {
	a := subStream(1, 10, 0).Float64()
	b := subStream(1, 11, 0).Float64()
	c := subStream(1, 10, 1).Float64()
	if a == b && b == c {
		t.Error("Sub-streams for distinct nodes/steps produced identical draws")
	}
}
