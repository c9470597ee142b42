// Package export turns finished simulation runs into their persisted forms:
// the stable JSON result document and the compressed per-step snapshot log.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-seiz/pkg/seiz"
)

// NetworkInfo summarizes the graph a run was executed on.
type NetworkInfo struct {
	NumNodes int `json:"num_nodes"`
	NumEdges int `json:"num_edges"`
}

// Result is the persisted record of one run. The model_type, parameters,
// network_info, and history field names are a stable contract; run_id and
// created_at are additions for archival bookkeeping.
type Result struct {
	RunID       string               `json:"run_id"`
	ModelType   string               `json:"model_type"`
	Parameters  any                  `json:"parameters"`
	NetworkInfo NetworkInfo          `json:"network_info"`
	History     []seiz.HistoryRecord `json:"history"`
	CreatedAt   time.Time            `json:"created_at"`
}

// BuildResult assembles a Result from a simulator whose Run has returned.
// Each call mints a fresh run ID.
func BuildResult(sim *seiz.Simulator) *Result {
	g := sim.Graph()
	return &Result{
		RunID:      uuid.NewString(),
		ModelType:  sim.ModelType(),
		Parameters: sim.Parameters(),
		NetworkInfo: NetworkInfo{
			NumNodes: g.NumNodes(),
			NumEdges: g.NumEdges(),
		},
		History:   sim.History(),
		CreatedAt: time.Now().UTC(),
	}
}

// WriteJSON writes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding result %s: %w", r.RunID, err)
	}
	return nil
}

// SaveJSON writes the result to a file, creating or truncating it.
func (r *Result) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
