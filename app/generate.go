// Package app provides application services that orchestrate the
// generation pass across registered plugins.
package app

import (
	"fmt"
	"time"

	"github.com/artpar/gateforge/adapters/metrics"
	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/validation"
	"github.com/artpar/gateforge/domain/pin"
	"github.com/artpar/gateforge/ports"
	"github.com/rs/zerolog"
)

// Result holds everything one generation pass produced. All slices
// preserve plugin registration order, and within a plugin, instance
// order. Results are recomputed fresh on every pass; nothing survives
// between invocations.
type Result struct {
	ID             string               `json:"id"`
	PinBindings    []pin.Binding        `json:"pin_bindings"`
	ResourceSizes  []ports.ResourceSize `json:"resource_sizes"`
	Declarations   []string             `json:"declarations"`
	Instantiations []string             `json:"instantiations"`
	SourceFiles    []string             `json:"source_files"`
	Warnings       []validation.Problem `json:"warnings,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// ValidationError is returned when the document fails schema validation.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	n := 0
	for _, p := range e.Result.Problems {
		if p.Severity == validation.SeverityError {
			n++
		}
	}
	return fmt.Sprintf("configuration has %d validation error(s)", n)
}

// Generator runs generation passes over configuration documents.
type Generator struct {
	registry  *registry.Registry
	validator *validation.Validator
	ids       ports.IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Collector // nil when metrics are disabled
}

// NewGenerator creates a new generator.
func NewGenerator(reg *registry.Registry, ids ports.IDGenerator, logger zerolog.Logger) *Generator {
	return &Generator{
		registry:  reg,
		validator: validation.New(reg),
		ids:       ids,
		logger:    logger,
	}
}

// WithMetrics attaches a metrics collector.
func (g *Generator) WithMetrics(m *metrics.Collector) *Generator {
	g.metrics = m
	return g
}

// Run validates the document and aggregates every registered plugin's
// contributions. Validation errors abort the pass; warnings are
// carried in the result.
func (g *Generator) Run(cfg *config.Config) (*Result, error) {
	start := time.Now()

	vr := g.validator.Validate(cfg)
	if g.metrics != nil {
		for _, p := range vr.Problems {
			g.metrics.ValidationProblems.WithLabelValues(string(p.Severity)).Inc()
		}
	}
	if !vr.Valid() {
		for _, p := range vr.Problems {
			g.logger.Error().Str("path", p.Path).Str("severity", string(p.Severity)).Msg(p.Message)
		}
		if g.metrics != nil {
			g.metrics.GenerationsTotal.WithLabelValues("invalid").Inc()
		}
		return nil, &ValidationError{Result: vr}
	}

	result := &Result{
		ID:          g.ids.New(),
		GeneratedAt: start,
	}
	for _, p := range vr.Problems {
		if p.Severity == validation.SeverityWarning {
			g.logger.Warn().Str("path", p.Path).Msg(p.Message)
			result.Warnings = append(result.Warnings, p)
		}
	}

	seenFiles := make(map[string]bool)
	for _, plugin := range g.registry.List() {
		entry := plugin.Describe()

		bindings := plugin.PinBindings(cfg)
		sizes := plugin.ResourceSizes(cfg)
		result.PinBindings = append(result.PinBindings, bindings...)
		result.ResourceSizes = append(result.ResourceSizes, sizes...)
		result.Declarations = append(result.Declarations, plugin.Declarations(cfg)...)
		result.Instantiations = append(result.Instantiations, plugin.Instantiations(cfg)...)

		// De-duplicate source files, preserving first occurrence
		for _, f := range plugin.SourceFiles(cfg) {
			if !seenFiles[f] {
				seenFiles[f] = true
				result.SourceFiles = append(result.SourceFiles, f)
			}
		}

		g.logger.Debug().
			Str("plugin", entry.SubType).
			Int("pins", len(bindings)).
			Int("buses", len(sizes)).
			Msg("plugin contribution collected")
	}

	if g.metrics != nil {
		g.metrics.GenerationsTotal.WithLabelValues("ok").Inc()
		g.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}

	g.logger.Info().
		Str("run_id", result.ID).
		Int("pins", len(result.PinBindings)).
		Int("source_files", len(result.SourceFiles)).
		Dur("elapsed", time.Since(start)).
		Msg("generation pass complete")

	return result, nil
}
