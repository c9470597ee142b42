package seiz

import (
	"errors"
	"testing"
)

func validBaseParams() Params {
	return Params{Beta: 0.3, B: 0.1, Rho: 0.2, Eps: 0.1, P: 0.7, L: 0.6, Dt: 1.0}
}

func TestParams_Validate(t *testing.T) {
	if err := validBaseParams().Validate(); err != nil {
		t.Fatalf("Valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"beta above 1", func(p *Params) { p.Beta = 1.1 }},
		{"beta negative", func(p *Params) { p.Beta = -0.1 }},
		{"p above 1", func(p *Params) { p.P = 2 }},
		{"l negative", func(p *Params) { p.L = -1 }},
		{"dt zero", func(p *Params) { p.Dt = 0 }},
		{"dt negative", func(p *Params) { p.Dt = -0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validBaseParams()
			tc.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestBasicModeratorParams_Validate(t *testing.T) {
	p := BasicModeratorParams{Params: validBaseParams(), Mu: 0.2, M: 0.5}
	if err := p.Validate(); err != nil {
		t.Fatalf("Valid params rejected: %v", err)
	}

	p.Mu = 1.5
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for mu out of range, got %v", err)
	}

	p = BasicModeratorParams{Params: validBaseParams(), Mu: 0.2, M: -0.1}
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for m out of range, got %v", err)
	}
}

func TestSmartModeratorParams_Validate(t *testing.T) {
	valid := SmartModeratorParams{
		Params: validBaseParams(),
		N:      10, Theta: 3, T: 0.7, Eta: 0.5, Lambda: 0.2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SmartModeratorParams)
	}{
		{"n zero", func(p *SmartModeratorParams) { p.N = 0 }},
		{"theta zero", func(p *SmartModeratorParams) { p.Theta = 0 }},
		{"T above 1", func(p *SmartModeratorParams) { p.T = 1.2 }},
		{"eta negative", func(p *SmartModeratorParams) { p.Eta = -0.2 }},
		{"lambda above 1", func(p *SmartModeratorParams) { p.Lambda = 3 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestModelError_Format(t *testing.T) {
	err := &ModelError{Op: "Run", Field: "steps", Cause: ErrInvalidParameter, Context: "steps=0, need >= 1"}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Empty error message")
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("errors.Is should match the cause")
	}
}
