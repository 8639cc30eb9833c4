package metrics_test

import (
	"testing"

	"github.com/artpar/gateforge/adapters/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	// Use a new registry to avoid conflicts with other tests
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	if m == nil {
		t.Fatal("NewWithRegistry returned nil")
	}

	// Verify all metrics are initialized
	if m.GenerationsTotal == nil {
		t.Error("GenerationsTotal is nil")
	}
	if m.GenerationDuration == nil {
		t.Error("GenerationDuration is nil")
	}
	if m.ValidationProblems == nil {
		t.Error("ValidationProblems is nil")
	}
	if m.ConfigReloads == nil {
		t.Error("ConfigReloads is nil")
	}
	if m.ConfigReloadErrors == nil {
		t.Error("ConfigReloadErrors is nil")
	}
	if m.RequestsTotal == nil {
		t.Error("RequestsTotal is nil")
	}
	if m.RequestDuration == nil {
		t.Error("RequestDuration is nil")
	}
}

func TestGenerationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	// Record some passes
	m.GenerationsTotal.WithLabelValues("ok").Inc()
	m.GenerationsTotal.WithLabelValues("invalid").Add(2)

	// Verify metrics were gathered
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "gateforge_generations_total" {
			found = true
			var total float64
			for _, metric := range f.GetMetric() {
				total += metric.GetCounter().GetValue()
			}
			if total != 3 {
				t.Errorf("generations total = %v, want 3", total)
			}
		}
	}
	if !found {
		t.Error("gateforge_generations_total not gathered")
	}
}

func TestValidationProblems(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.ValidationProblems.WithLabelValues("error").Inc()
	m.ValidationProblems.WithLabelValues("warning").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}

	for _, f := range families {
		if f.GetName() == "gateforge_validation_problems_total" {
			if len(f.GetMetric()) != 2 {
				t.Errorf("got %d label sets, want 2", len(f.GetMetric()))
			}
			return
		}
	}
	t.Error("gateforge_validation_problems_total not gathered")
}
