// Package pin provides physical pin binding value types.
// This package has NO dependencies on I/O or external packages.
package pin

import "fmt"

// Direction is the electrical direction of a pin as seen from the FPGA.
type Direction string

const (
	DirectionInput  Direction = "INPUT"
	DirectionOutput Direction = "OUTPUT"
)

// Binding maps a logical signal name to a physical pin (immutable value type).
type Binding struct {
	Name      string    // Logical signal name (e.g. EXPANSION0_SHIFTREG_CLOCK)
	Pin       string    // Physical pin identifier (e.g. "B3", "141")
	Direction Direction
	Pullup    bool // Bias the line high when idle; inputs only
}

// Output creates a binding for an output pin.
func Output(name, physical string) Binding {
	return Binding{Name: name, Pin: physical, Direction: DirectionOutput}
}

// Input creates a binding for an input pin with an optional pull-up.
func Input(name, physical string, pullup bool) Binding {
	return Binding{Name: name, Pin: physical, Direction: DirectionInput, Pullup: pullup}
}

// String renders the binding as a pin-table row.
func (b Binding) String() string {
	if b.Direction == DirectionInput {
		return fmt.Sprintf("%s -> %s (%s, pullup=%t)", b.Name, b.Pin, b.Direction, b.Pullup)
	}
	return fmt.Sprintf("%s -> %s (%s)", b.Name, b.Pin, b.Direction)
}
