// Package seiz implements a discrete-time, stochastic, agent-based SEIZ
// (Susceptible-Exposed-Infected-Skeptic) contagion model over a social
// graph, with optional content-moderation variants layered on top.
package seiz

// Compartment is a node's current epidemic state.
type Compartment uint8

const (
	Susceptible Compartment = iota
	Exposed
	Infected
	Skeptic

	numCompartments = 4
)

// String returns the single-letter compartment name used throughout the
// exported record format.
func (c Compartment) String() string {
	switch c {
	case Susceptible:
		return "S"
	case Exposed:
		return "E"
	case Infected:
		return "I"
	case Skeptic:
		return "Z"
	default:
		return "?"
	}
}

// HistoryRecord is one step's aggregate compartment counts. The four counts
// always sum to the graph's node count.
type HistoryRecord struct {
	Step int `json:"step"`
	S    int `json:"S"`
	E    int `json:"E"`
	I    int `json:"I"`
	Z    int `json:"Z"`
}

// Total returns S+E+I+Z.
func (h HistoryRecord) Total() int {
	return h.S + h.E + h.I + h.Z
}
