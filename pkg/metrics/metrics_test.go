package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRunAndStep(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("SEIZModel")
	r.RecordRun("SEIZModel")
	r.RecordRun("SEIZBMModel")

	if got := testutil.ToFloat64(r.RunsTotal.WithLabelValues("SEIZModel")); got != 2 {
		t.Errorf("RunsTotal[SEIZModel] = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RunsTotal.WithLabelValues("SEIZBMModel")); got != 1 {
		t.Errorf("RunsTotal[SEIZBMModel] = %v, want 1", got)
	}

	r.RecordStep("SEIZModel", 2*time.Millisecond)
	r.RecordStep("SEIZModel", 3*time.Millisecond)
	if got := testutil.ToFloat64(r.StepsTotal.WithLabelValues("SEIZModel")); got != 2 {
		t.Errorf("StepsTotal = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(r.StepDuration); got != 1 {
		t.Errorf("StepDuration series = %d, want 1", got)
	}
}

func TestSetCompartments(t *testing.T) {
	r := NewRegistry()

	r.SetCompartments("SEIZModel", 80, 10, 7, 3)
	r.SetCompartments("SEIZModel", 75, 12, 8, 5)

	cases := map[string]float64{"S": 75, "E": 12, "I": 8, "Z": 5}
	for state, want := range cases {
		if got := testutil.ToFloat64(r.Compartment.WithLabelValues("SEIZModel", state)); got != want {
			t.Errorf("Compartment[%s] = %v, want %v", state, got, want)
		}
	}
}

func TestAddTransitions(t *testing.T) {
	r := NewRegistry()

	r.AddTransitions("SEIZModel", "S", "E", 4)
	r.AddTransitions("SEIZModel", "S", "E", 2)
	r.AddTransitions("SEIZModel", "E", "I", 0) // zero counts create no series

	if got := testutil.ToFloat64(r.TransitionsTotal.WithLabelValues("SEIZModel", "S", "E")); got != 6 {
		t.Errorf("TransitionsTotal[S->E] = %v, want 6", got)
	}
	if got := testutil.CollectAndCount(r.TransitionsTotal); got != 1 {
		t.Errorf("Expected 1 transition series, got %d", got)
	}
}

func TestAddModerations(t *testing.T) {
	r := NewRegistry()

	r.AddModerations("SEIZBMModel", "success", 3)
	r.AddModerations("SEIZSMModel", "demoted", 5)

	if got := testutil.ToFloat64(r.ModerationsTotal.WithLabelValues("SEIZBMModel", "success")); got != 3 {
		t.Errorf("ModerationsTotal[success] = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.ModerationsTotal.WithLabelValues("SEIZSMModel", "demoted")); got != 5 {
		t.Errorf("ModerationsTotal[demoted] = %v, want 5", got)
	}
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry returned distinct instances")
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.RecordRun("SEIZModel")
	if got := testutil.ToFloat64(b.RunsTotal.WithLabelValues("SEIZModel")); got != 0 {
		t.Errorf("Registries share state: %v", got)
	}
	if a.GetPrometheusRegistry() == b.GetPrometheusRegistry() {
		t.Error("Underlying Prometheus registries must differ")
	}
}
