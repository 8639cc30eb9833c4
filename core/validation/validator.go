// Package validation checks configuration documents against plugin
// schemas before generation. Plugins assume valid input; every
// structural problem is caught here, at the host boundary.
package validation

import (
	"fmt"

	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/hdl"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/schema"
)

// Severity classifies a validation problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem describes one issue found in a configuration document.
type Problem struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`    // e.g. "expansion[2].pins.clock"
	Message  string   `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Path, p.Message)
}

// Result collects the problems found in one validation pass.
type Result struct {
	Problems []Problem `json:"problems"`
}

// Valid reports whether no error-severity problems were found.
// Warnings do not make a document invalid.
func (r Result) Valid() bool {
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Result) addError(path, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(path, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Validator validates configuration documents against the schemas of
// the registered plugins.
type Validator struct {
	registry *registry.Registry
}

// New creates a new validator backed by the given plugin registry.
func New(reg *registry.Registry) *Validator {
	return &Validator{registry: reg}
}

// Validate checks the whole document. All problems are collected; the
// pass never stops at the first one.
func (v *Validator) Validate(cfg *config.Config) Result {
	var result Result

	if cfg.Clock.Speed <= 0 {
		result.addError("clock.speed", "system clock speed must be positive, got %d", cfg.Clock.Speed)
	}

	for i, entry := range cfg.Expansion {
		path := fmt.Sprintf("expansion[%d]", i)

		plugin, ok := v.registry.Get(entry.Type)
		if !ok {
			result.addError(path+".type", "unknown expansion type %q (registered: %v)", entry.Type, v.registry.Subtypes())
			continue
		}

		v.validateEntry(&result, path, plugin.Describe(), entry, cfg.Clock.Speed)
	}

	return result
}

func (v *Validator) validateEntry(result *Result, path string, entry schema.Entry, e config.ExpansionEntry, systemHz int) {
	if e.Bits != nil && *e.Bits <= 0 {
		result.addError(path+".bits", "chain width must be positive, got %d", *e.Bits)
	}
	if e.Speed != nil && *e.Speed <= 0 {
		result.addError(path+".speed", "shift clock speed must be positive, got %d", *e.Speed)
	}

	pinsOpt, hasPins := entry.Options["pins"]
	if hasPins {
		v.validatePins(result, path+".pins", pinsOpt, e.Pins)
	}

	// A degenerate divider is emitted as-is by the generator, which
	// disables shifting in the gateware. Surface it here as a warning
	// so the author finds out before synthesis.
	if systemHz > 0 && e.ShiftSpeed() > 0 {
		if hdl.ClockDivider(systemHz, e.ShiftSpeed()) == 0 {
			result.addWarning(path+".speed",
				"shift clock %d Hz is at or above half the %d Hz system clock, divider is 0 and shifting will stall",
				e.ShiftSpeed(), systemHz)
		}
	}

	if !e.Pins.HasIn() && !e.Pins.HasOut() {
		result.addWarning(path+".pins", "neither 'in' nor 'out' is configured, the expansion moves no data")
	}
}

func (v *Validator) validatePins(result *Result, path string, pinsOpt schema.Option, pins config.PinSet) {
	assigned := map[string]string{
		"clock": pins.Clock,
		"load":  pins.Load,
		"in":    pins.In,
		"out":   pins.Out,
	}

	for role, opt := range pinsOpt.Options {
		if opt.Required && assigned[role] == "" {
			result.addError(fmt.Sprintf("%s.%s", path, role), "required pin role is not assigned")
		}
	}

	// The same physical pin assigned to two roles is always a mistake.
	seen := make(map[string]string)
	for _, role := range []string{"clock", "load", "in", "out"} {
		physical := assigned[role]
		if physical == "" {
			continue
		}
		if other, dup := seen[physical]; dup {
			result.addError(fmt.Sprintf("%s.%s", path, role), "physical pin %q already assigned to role %q", physical, other)
			continue
		}
		seen[physical] = role
	}
}
