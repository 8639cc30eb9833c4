// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/ and plugins/.
package ports

import (
	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/schema"
	"github.com/artpar/gateforge/domain/pin"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Plugin Ports
// -----------------------------------------------------------------------------

// ResourceSize declares the bit width of one logical bus an expansion
// exposes to the rest of the generated design.
type ResourceSize struct {
	Name  string
	Width int
}

// ExpansionPlugin is implemented by every expansion code generator.
//
// All methods are pure functions of the configuration document: no
// state is kept between calls, and calling any method twice with the
// same document yields identical output. Methods that derive per
// instance outputs must agree on instance indices; plugins get this
// for free by deriving everything from config.Enumerate.
type ExpansionPlugin interface {
	// Describe returns the static schema entry for this expansion type.
	Describe() schema.Entry

	// PinBindings returns the physical pin bindings for every
	// matching instance, in instance order.
	PinBindings(cfg *config.Config) []pin.Binding

	// ResourceSizes returns the logical bus widths for every matching
	// instance, in instance order.
	ResourceSizes(cfg *config.Config) []ResourceSize

	// Declarations returns the Verilog signal declaration lines for
	// every matching instance, prefixed by a block header comment.
	Declarations(cfg *config.Config) []string

	// Instantiations returns the Verilog module instantiation lines
	// for every matching instance, prefixed by a block header comment.
	Instantiations(cfg *config.Config) []string

	// SourceFiles returns the external Verilog sources the build needs
	// when at least one matching instance exists, else nil.
	SourceFiles(cfg *config.Config) []string
}
