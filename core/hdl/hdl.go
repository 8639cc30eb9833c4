// Package hdl models Verilog fragments as structured values.
// Fragments are built from typed declarations and instantiations and
// rendered to text in one place, so numeric derivations (bus widths,
// clock dividers) stay testable without parsing generated text back out.
package hdl

import (
	"fmt"
	"strconv"
	"strings"
)

// SignalKind distinguishes net and storage declarations.
type SignalKind string

const (
	KindWire SignalKind = "wire"
	KindReg  SignalKind = "reg"
)

// Signal is a single wire or reg declaration.
type Signal struct {
	Kind    SignalKind
	Name    string
	Width   int    // Bit count; widths <= 1 render without a range
	Init    string // Initial value expression, regs only ("" = none)
	Comment string // Trailing comment ("" = none)
}

// Wire creates a bus wire declaration of the given width.
func Wire(name string, width int) Signal {
	return Signal{Kind: KindWire, Name: name, Width: width}
}

// Verilog renders the declaration as a single indented source line.
func (s Signal) Verilog() string {
	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(string(s.Kind))
	if s.Width > 1 {
		fmt.Fprintf(&b, " [%d:0]", s.Width-1)
	}
	b.WriteString(" ")
	b.WriteString(s.Name)
	if s.Init != "" {
		b.WriteString(" = ")
		b.WriteString(s.Init)
	}
	b.WriteString(";")
	if s.Comment != "" {
		b.WriteString(" // ")
		b.WriteString(s.Comment)
	}
	return b.String()
}

// Port is a named port connection in a module instantiation.
type Port struct {
	Name   string // Port name on the instantiated module
	Signal string // Signal expression bound to the port
}

// Instance is a parameterized module instantiation.
type Instance struct {
	Module string // Module template name
	Name   string // Instance name, unique within the design
	Params []int  // Positional parameter values
	Ports  []Port // Connections, rendered in slice order
}

// Verilog renders the instantiation as indented source lines.
func (in Instance) Verilog() []string {
	params := make([]string, len(in.Params))
	for i, p := range in.Params {
		params[i] = strconv.Itoa(p)
	}

	lines := make([]string, 0, len(in.Ports)+2)
	if len(in.Params) > 0 {
		lines = append(lines, fmt.Sprintf("    %s #(%s) %s (", in.Module, strings.Join(params, ", "), in.Name))
	} else {
		lines = append(lines, fmt.Sprintf("    %s %s (", in.Module, in.Name))
	}
	for i, p := range in.Ports {
		sep := ","
		if i == len(in.Ports)-1 {
			sep = ""
		}
		lines = append(lines, fmt.Sprintf("       .%s (%s)%s", p.Name, p.Signal, sep))
	}
	lines = append(lines, "    );")
	return lines
}

// Comment renders an indented single-line comment.
func Comment(text string) string {
	return "    // " + text
}

// ClockDivider derives the divider for a slow clock generated from the
// system clock by toggling on a counter. Both divisions truncate; a
// target at or above half the system clock yields 0.
func ClockDivider(systemHz, targetHz int) int {
	return systemHz / targetHz / 2
}
