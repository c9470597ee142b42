// Package config loads and validates YAML run configurations for the CLIs
// and assembles graphs and simulators from them.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-seiz/pkg/graph"
	"github.com/dd0wney/cluso-seiz/pkg/seiz"
)

var validate = validator.New()

// Model type names accepted in config files.
const (
	ModelBase           = "seiz"
	ModelBasicModerator = "seiz_bm"
	ModelSmartModerator = "seiz_sm"
)

// Config is one complete run description.
type Config struct {
	Model  string       `yaml:"model" validate:"required,oneof=seiz seiz_bm seiz_sm"`
	Params ParamsConfig `yaml:"params"`
	Graph  GraphConfig  `yaml:"graph" validate:"required"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
}

// ParamsConfig carries the union of all model parameters; only the fields
// relevant to the chosen model are consulted. Bounds are enforced by the
// simulator constructors.
type ParamsConfig struct {
	Beta float64 `yaml:"beta"`
	B    float64 `yaml:"b"`
	Rho  float64 `yaml:"rho"`
	Eps  float64 `yaml:"eps"`
	P    float64 `yaml:"p"`
	L    float64 `yaml:"l"`
	Dt   float64 `yaml:"dt"`

	// basic moderator
	Mu float64 `yaml:"mu"`
	M  float64 `yaml:"m"`

	// smart moderator
	N      int     `yaml:"n"`
	Theta  int     `yaml:"theta"`
	T      float64 `yaml:"T"`
	Eta    float64 `yaml:"eta"`
	Lambda float64 `yaml:"lambda"`
}

// GraphConfig describes how to obtain the graph substrate.
type GraphConfig struct {
	Type string `yaml:"type" validate:"required,oneof=ring complete erdos_renyi barabasi_albert edgelist"`

	Nodes  int     `yaml:"nodes"`  // generators
	Prob   float64 `yaml:"prob"`   // erdos_renyi
	Attach int     `yaml:"attach"` // barabasi_albert
	Seed   int64   `yaml:"seed"`   // random generators
	Path   string  `yaml:"path"`   // edgelist
}

// RunConfig describes the run itself.
type RunConfig struct {
	Steps        int     `yaml:"steps" validate:"gte=1"`
	Seed         int64   `yaml:"seed"`
	InfectedFrac float64 `yaml:"infected_frac" validate:"gte=0,lte=1"`
	SkepticFrac  float64 `yaml:"skeptic_frac" validate:"gte=0,lte=1"`
	Workers      int     `yaml:"workers" validate:"gte=0"`
}

// OutputConfig describes where run artifacts go. Empty fields disable the
// corresponding sink.
type OutputConfig struct {
	JSONPath     string `yaml:"json_path"`
	SnapshotPath string `yaml:"snapshot_path"`
	StreamAddr   string `yaml:"stream_addr"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// Default returns a runnable configuration mirroring the library's example
// parameterization: a 200-node Erdős–Rényi graph under the base model.
func Default() *Config {
	return &Config{
		Model: ModelBase,
		Params: ParamsConfig{
			Beta: 0.3, B: 0.1, Rho: 0.2, Eps: 0.1, P: 0.7, L: 0.6, Dt: 1.0,
			Mu: 0.1, M: 0.5,
			N: 10, Theta: 3, T: 0.7, Eta: 0.5, Lambda: 0.2,
		},
		Graph: GraphConfig{Type: "erdos_renyi", Nodes: 200, Prob: 0.05, Seed: 42},
		Run: RunConfig{
			Steps:        100,
			Seed:         42,
			InfectedFrac: 0.05,
			SkepticFrac:  0.05,
			Workers:      1,
		},
		Output: OutputConfig{JSONPath: "seiz_result.json"},
	}
}

// Load reads and validates a config file. Fields absent from the file keep
// their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints. Model-parameter bounds are left
// to the simulator constructors so the error surface is identical whether a
// simulator is built from config or directly.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config field %s: value %v violates %q", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Graph.Type == "edgelist" && c.Graph.Path == "" {
		return fmt.Errorf("config field Graph.Path: required for edgelist graphs")
	}
	if c.Run.InfectedFrac+c.Run.SkepticFrac > 1 {
		return fmt.Errorf("config: infected_frac+skeptic_frac = %v exceeds 1",
			c.Run.InfectedFrac+c.Run.SkepticFrac)
	}
	return nil
}

// BuildGraph constructs the graph substrate the config describes.
func (c *Config) BuildGraph() (*graph.Graph, error) {
	g := c.Graph
	switch g.Type {
	case "ring":
		return graph.Ring(g.Nodes)
	case "complete":
		return graph.Complete(g.Nodes)
	case "erdos_renyi":
		return graph.ErdosRenyi(g.Nodes, g.Prob, g.Seed)
	case "barabasi_albert":
		return graph.BarabasiAlbert(g.Nodes, g.Attach, g.Seed)
	case "edgelist":
		f, err := os.Open(g.Path)
		if err != nil {
			return nil, fmt.Errorf("opening edge list: %w", err)
		}
		defer f.Close()
		return graph.ReadEdgeList(f)
	default:
		return nil, fmt.Errorf("unknown graph type %q", g.Type)
	}
}

// NewSimulator constructs the simulator the config describes.
func (c *Config) NewSimulator(g *graph.Graph, opts ...seiz.Option) (*seiz.Simulator, error) {
	base := seiz.Params{
		Beta: c.Params.Beta,
		B:    c.Params.B,
		Rho:  c.Params.Rho,
		Eps:  c.Params.Eps,
		P:    c.Params.P,
		L:    c.Params.L,
		Dt:   c.Params.Dt,
	}
	if c.Run.Workers > 1 {
		opts = append(opts, seiz.WithWorkers(c.Run.Workers))
	}
	switch c.Model {
	case ModelBase:
		return seiz.New(g, base, opts...)
	case ModelBasicModerator:
		return seiz.NewBasicModerator(g, seiz.BasicModeratorParams{
			Params: base,
			Mu:     c.Params.Mu,
			M:      c.Params.M,
		}, opts...)
	case ModelSmartModerator:
		return seiz.NewSmartModerator(g, seiz.SmartModeratorParams{
			Params: base,
			N:      c.Params.N,
			Theta:  c.Params.Theta,
			T:      c.Params.T,
			Eta:    c.Params.Eta,
			Lambda: c.Params.Lambda,
		}, opts...)
	default:
		return nil, fmt.Errorf("unknown model %q", c.Model)
	}
}
