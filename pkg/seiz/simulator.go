package seiz

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dd0wney/cluso-seiz/pkg/graph"
	"github.com/dd0wney/cluso-seiz/pkg/logging"
	"github.com/dd0wney/cluso-seiz/pkg/metrics"
	"github.com/dd0wney/cluso-seiz/pkg/parallel"
)

// StepObserver is invoked after every executed step with that step's
// aggregate record and the per-node compartment snapshot. The snapshot
// slice is only valid for the duration of the call; observers that need to
// keep it must copy.
type StepObserver func(rec HistoryRecord, states []Compartment)

// Simulator owns one simulation: the graph, the state store, the random
// sub-streams, and the run history. A Simulator is not safe for concurrent
// use; each run has a single logical owner.
type Simulator struct {
	graph  *graph.Graph
	policy moderationPolicy
	smart  *smartModeratorPolicy // non-nil for the smart variant
	model  string
	params any

	// shared contact-rule probabilities
	beta, b, p, l float64

	states    []Compartment
	scratch   []Compartment
	profiles  []ToxicityProfile
	counts    [numCompartments]int
	lastTrans [numCompartments][numCompartments]int

	seed        uint64
	stepIdx     uint64
	history     []HistoryRecord
	initialized bool

	workers  int
	logger   logging.Logger
	metrics  *metrics.Registry
	observer StepObserver
}

// Option configures a Simulator at construction.
type Option func(*Simulator)

// WithLogger sets the structured logger (default: discard).
func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithMetrics sets the metrics registry (default: none).
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Simulator) { s.metrics = r }
}

// WithWorkers sets how many goroutines evaluate node transitions within a
// step. Values <= 1 mean sequential. Results are identical either way.
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = n }
}

// WithStepObserver registers a callback fired after every executed step.
func WithStepObserver(fn StepObserver) Option {
	return func(s *Simulator) { s.observer = fn }
}

// New creates a base SEIZ simulator.
func New(g *graph.Graph, p Params, opts ...Option) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	policy := &basePolicy{rho: p.Rho, eps: p.Eps}
	return newSimulator(g, policy, nil, p, p, opts)
}

// NewBasicModerator creates a SEIZ simulator with the probabilistic
// moderator variant.
func NewBasicModerator(g *graph.Graph, p BasicModeratorParams, opts ...Option) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	policy := &basicModeratorPolicy{rho: p.Rho, eps: p.Eps, mu: p.Mu, m: p.M}
	return newSimulator(g, policy, nil, p.Params, p, opts)
}

// NewSmartModerator creates a SEIZ simulator with the toxicity-scoring
// moderator variant.
func NewSmartModerator(g *graph.Graph, p SmartModeratorParams, opts ...Option) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	policy := &smartModeratorPolicy{
		rho: p.Rho, t: p.T, eta: p.Eta, lambda: p.Lambda,
		n: p.N, theta: p.Theta,
	}
	return newSimulator(g, policy, policy, p.Params, p, opts)
}

func newSimulator(g *graph.Graph, policy moderationPolicy, smart *smartModeratorPolicy, base Params, params any, opts []Option) (*Simulator, error) {
	if g == nil || g.NumNodes() == 0 {
		return nil, &ModelError{Op: "New", Cause: ErrEmptyGraph}
	}
	n := g.NumNodes()
	s := &Simulator{
		graph:   g,
		policy:  policy,
		smart:   smart,
		model:   policy.modelType(),
		params:  params,
		beta:    base.Beta,
		b:       base.B,
		p:       base.P,
		l:       base.L,
		states:  make([]Compartment, n),
		scratch: make([]Compartment, n),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// InitializeStates seeds the state store: floor(n*infectedFrac) nodes start
// Infected, floor(n*skepticFrac) start Skeptic (disjoint, chosen by a
// seeded shuffle of the node set), everyone else Susceptible, Exposed
// empty. For the smart variant it also draws every node's toxicity profile.
// Calling it again fully resets the simulator under the new seed.
func (s *Simulator) InitializeStates(infectedFrac, skepticFrac float64, seed int64) error {
	if err := checkFraction("infectedFrac", infectedFrac); err != nil {
		return err
	}
	if err := checkFraction("skepticFrac", skepticFrac); err != nil {
		return err
	}
	if sum := infectedFrac + skepticFrac; sum > 1 {
		return &ModelError{
			Op:      "InitializeStates",
			Field:   "infectedFrac+skepticFrac",
			Cause:   ErrInvalidParameter,
			Context: fmt.Sprintf("fractions sum to %v, must not exceed 1", sum),
		}
	}

	n := s.graph.NumNodes()
	s.seed = uint64(seed)
	s.stepIdx = 0
	s.history = s.history[:0]

	for i := range s.states {
		s.states[i] = Susceptible
	}

	order := subStream(s.seed, 0, streamShuffle).Perm(n)
	nInfected := int(math.Floor(float64(n) * infectedFrac))
	nSkeptic := int(math.Floor(float64(n) * skepticFrac))
	for i := 0; i < nInfected; i++ {
		s.states[order[i]] = Infected
	}
	for i := nInfected; i < nInfected+nSkeptic; i++ {
		s.states[order[i]] = Skeptic
	}

	if s.smart != nil {
		if s.profiles == nil {
			s.profiles = make([]ToxicityProfile, n)
		}
		for i := range s.profiles {
			s.profiles[i] = drawProfile(subStream(s.seed, uint64(i), streamProfile))
		}
		s.smart.profiles = s.profiles
	}

	s.counts = [numCompartments]int{}
	for _, st := range s.states {
		s.counts[st]++
	}

	s.initialized = true
	s.logger.Debug("states initialized",
		logging.Model(s.model),
		logging.Seed(seed),
		logging.Int("infected", nInfected),
		logging.Int("skeptic", nSkeptic),
		logging.Nodes(n),
	)
	return nil
}

func checkFraction(name string, v float64) error {
	if v < 0 || v > 1 {
		return &ModelError{
			Op:      "InitializeStates",
			Field:   name,
			Cause:   ErrInvalidParameter,
			Context: fmt.Sprintf("value %v outside [0,1]", v),
		}
	}
	return nil
}

// Run executes the step loop. The returned history starts with the current
// pre-step snapshot (step index as of the call) followed by one record per
// executed step; running twice for k steps each therefore covers step
// indices 0..k and k..2k. Cancellation is honored at step boundaries only,
// so the state store is always consistent at the last completed step. A
// call that fails validation leaves all state untouched.
func (s *Simulator) Run(ctx context.Context, steps int) ([]HistoryRecord, error) {
	if !s.initialized {
		return nil, &ModelError{Op: "Run", Cause: ErrNotInitialized}
	}
	if steps < 1 {
		return nil, &ModelError{
			Op:      "Run",
			Field:   "steps",
			Cause:   ErrInvalidParameter,
			Context: fmt.Sprintf("steps=%d, need >= 1", steps),
		}
	}

	var pool *parallel.Pool
	if s.workers > 1 {
		pool = parallel.NewPool(s.workers)
		defer pool.Close()
	}

	if s.metrics != nil {
		s.metrics.RecordRun(s.model)
	}
	s.logger.Info("run started",
		logging.Model(s.model),
		logging.Steps(steps),
		logging.Nodes(s.graph.NumNodes()),
		logging.Int("workers", s.workers),
	)

	s.history = s.history[:0]
	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("run cancelled", logging.Model(s.model), logging.Step(int(s.stepIdx)), logging.Err(err))
			return slices.Clone(s.history), &ModelError{
				Op:      "Run",
				Cause:   ErrRunCancelled,
				Context: fmt.Sprintf("at step %d: %v", s.stepIdx, err),
			}
		}

		s.record()
		stepStart := time.Now()
		s.step(pool)
		s.stepIdx++

		if s.metrics != nil {
			s.recordMetrics(time.Since(stepStart))
		}
		if s.observer != nil {
			s.observer(s.currentRecord(), s.states)
		}
		s.logger.Debug("step executed",
			logging.Model(s.model),
			logging.Step(int(s.stepIdx)),
			logging.Int("S", s.counts[Susceptible]),
			logging.Int("E", s.counts[Exposed]),
			logging.Int("I", s.counts[Infected]),
			logging.Int("Z", s.counts[Skeptic]),
		)
	}
	s.record()

	s.logger.Info("run finished",
		logging.Model(s.model),
		logging.Steps(steps),
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("S", s.counts[Susceptible]),
		logging.Int("E", s.counts[Exposed]),
		logging.Int("I", s.counts[Infected]),
		logging.Int("Z", s.counts[Skeptic]),
	)
	return slices.Clone(s.history), nil
}

func (s *Simulator) record() {
	s.history = append(s.history, s.currentRecord())
}

func (s *Simulator) currentRecord() HistoryRecord {
	return HistoryRecord{
		Step: int(s.stepIdx),
		S:    s.counts[Susceptible],
		E:    s.counts[Exposed],
		I:    s.counts[Infected],
		Z:    s.counts[Skeptic],
	}
}

func (s *Simulator) recordMetrics(stepTime time.Duration) {
	m := s.metrics
	m.RecordStep(s.model, stepTime)
	m.SetCompartments(s.model, s.counts[Susceptible], s.counts[Exposed], s.counts[Infected], s.counts[Skeptic])
	for from := Susceptible; from < numCompartments; from++ {
		for to := Susceptible; to < numCompartments; to++ {
			if from == to {
				continue
			}
			m.AddTransitions(s.model, from.String(), to.String(), s.lastTrans[from][to])
		}
	}
	// In the moderated variants these edges exist only through moderation.
	switch s.model {
	case ModelTypeBasicModerator:
		m.AddModerations(s.model, "success", s.lastTrans[Infected][Skeptic])
	case ModelTypeSmartModerator:
		m.AddModerations(s.model, "demoted", s.lastTrans[Infected][Exposed])
	}
}

// Snapshot returns a copy of the per-node compartment assignment.
func (s *Simulator) Snapshot() []Compartment {
	return slices.Clone(s.states)
}

// Counts returns the current aggregate compartment counts.
func (s *Simulator) Counts() HistoryRecord {
	return s.currentRecord()
}

// History returns a copy of the records accumulated by the last Run.
func (s *Simulator) History() []HistoryRecord {
	return slices.Clone(s.history)
}

// Profiles returns a copy of the per-node toxicity profiles, or nil for
// variants without them.
func (s *Simulator) Profiles() []ToxicityProfile {
	return slices.Clone(s.profiles)
}

// ModelType returns the exported model-type name.
func (s *Simulator) ModelType() string {
	return s.model
}

// Parameters returns the typed parameter set the simulator was built with.
func (s *Simulator) Parameters() any {
	return s.params
}

// Graph returns the underlying graph substrate.
func (s *Simulator) Graph() *graph.Graph {
	return s.graph
}
