// Package shiftreg generates gateware for shift-register I/O expansions.
// Chains of fast shift registers (74HC595 for outputs, 74HC165 for
// inputs) multiplex many logical I/O lines over four physical pins;
// this plugin emits the pin bindings, bus sizing, and Verilog fragments
// that wire such chains into the generated design.
package shiftreg

import (
	"fmt"

	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/hdl"
	"github.com/artpar/gateforge/core/schema"
	"github.com/artpar/gateforge/domain/pin"
	"github.com/artpar/gateforge/ports"
)

// SubType is the configuration discriminator this plugin matches.
const SubType = "shiftreg"

// SourceFile implements the expansion_shiftreg Verilog module.
const SourceFile = "expansion_shiftreg.v"

// Plugin generates shift-register expansion gateware. The zero value
// is ready to use; the plugin keeps no state between calls.
type Plugin struct{}

// New creates the plugin.
func New() Plugin {
	return Plugin{}
}

// Ensure interface compliance.
var _ ports.ExpansionPlugin = Plugin{}

// Describe returns the schema for shiftreg expansion entries. The
// fields declared here are exactly the fields the derivation methods
// below consume.
func (Plugin) Describe() schema.Entry {
	return schema.Entry{
		BaseType: "expansion",
		SubType:  SubType,
		Comment:  "expand the number of IOs via fast shift registers like 74hc595 (8 outputs) / 74hc165 (8 inputs)",
		Options: map[string]schema.Option{
			"bits": {
				Type:    schema.OptionTypeInt,
				Name:    "number of bits",
				Comment: "total number of bits to send/receive N = max(8bit * num input-devices, 8bit * num output-devices)",
				Default: config.DefaultBits,
			},
			"speed": {
				Type:    schema.OptionTypeInt,
				Name:    "clock speed",
				Comment: "the shift clock speed in Hz",
				Default: config.DefaultSpeed,
			},
			"pullup": {
				Type:    schema.OptionTypeBool,
				Name:    "input pull-up",
				Comment: "bias the serial input line high when idle",
				Default: true,
			},
			"pins": {
				Type: schema.OptionTypeDict,
				Name: "pin config",
				Options: map[string]schema.Option{
					"clock": {
						Type:     schema.OptionTypeOutputPin,
						Name:     "clock pin",
						Comment:  "used for input and output expansions",
						Required: true,
					},
					"load": {
						Type:     schema.OptionTypeOutputPin,
						Name:     "load pin",
						Comment:  "used for input and output expansions",
						Required: true,
					},
					"in": {
						Type:    schema.OptionTypeInputPin,
						Name:    "input data",
						Comment: "used only for the input expansions",
					},
					"out": {
						Type:    schema.OptionTypeOutputPin,
						Name:    "output data",
						Comment: "used only for the output expansions",
					},
				},
			},
		},
	}
}

// PinBindings returns the physical pin bindings for every shiftreg
// instance. Clock and load are always bound; the serial data roles are
// bound only when configured.
func (Plugin) PinBindings(cfg *config.Config) []pin.Binding {
	var out []pin.Binding
	for _, inst := range cfg.Enumerate(SubType) {
		pins := inst.Entry.Pins
		out = append(out,
			pin.Output(signalName(inst.Index, "CLOCK"), pins.Clock),
			pin.Output(signalName(inst.Index, "LOAD"), pins.Load),
		)
		if pins.HasOut() {
			out = append(out, pin.Output(signalName(inst.Index, "OUT"), pins.Out))
		}
		if pins.HasIn() {
			out = append(out, pin.Input(signalName(inst.Index, "IN"), pins.In, inst.Entry.PullupEnabled()))
		}
	}
	return out
}

// ResourceSizes returns the logical bus widths shared with the rest of
// the design. Input and output buses of an instance are always the
// same width, whether or not both directions are wired to real pins.
func (Plugin) ResourceSizes(cfg *config.Config) []ports.ResourceSize {
	var out []ports.ResourceSize
	for _, inst := range cfg.Enumerate(SubType) {
		bits := inst.Entry.BitCount()
		out = append(out,
			ports.ResourceSize{Name: busName(inst.Index, "OUTPUT"), Width: bits},
			ports.ResourceSize{Name: busName(inst.Index, "INPUT"), Width: bits},
		)
	}
	return out
}

// Declarations returns the signal declarations for every shiftreg
// instance. Absent optional roles get single-bit placeholder signals
// so the instantiation always has a valid net to bind: a floating wire
// for the shift-out line, a reg tied to 0 for the shift-in line.
func (Plugin) Declarations(cfg *config.Config) []string {
	instances := cfg.Enumerate(SubType)
	if len(instances) == 0 {
		return nil
	}

	out := []string{hdl.Comment("expansion_shiftreg's")}
	for _, inst := range instances {
		bits := inst.Entry.BitCount()
		out = append(out,
			hdl.Wire(busName(inst.Index, "INPUT"), bits).Verilog(),
			hdl.Wire(busName(inst.Index, "OUTPUT"), bits).Verilog(),
		)
		if !inst.Entry.Pins.HasOut() {
			fake := hdl.Signal{Kind: hdl.KindWire, Name: signalName(inst.Index, "OUT"), Width: 1, Comment: "fake output pin"}
			out = append(out, fake.Verilog())
		}
		if !inst.Entry.Pins.HasIn() {
			fake := hdl.Signal{Kind: hdl.KindReg, Name: signalName(inst.Index, "IN"), Width: 1, Init: "0", Comment: "fake input pin"}
			out = append(out, fake.Verilog())
		}
	}
	return out
}

// Instantiations returns the module instantiations for every shiftreg
// instance, parameterized by chain width and shift clock divider.
func (Plugin) Instantiations(cfg *config.Config) []string {
	instances := cfg.Enumerate(SubType)
	if len(instances) == 0 {
		return nil
	}

	out := []string{hdl.Comment("expansion_shiftreg's")}
	for _, inst := range instances {
		divider := hdl.ClockDivider(cfg.Clock.Speed, inst.Entry.ShiftSpeed())
		block := hdl.Instance{
			Module: "expansion_shiftreg",
			Name:   fmt.Sprintf("expansion_shiftreg%d", inst.Index),
			Params: []int{inst.Entry.BitCount(), divider},
			Ports: []hdl.Port{
				{Name: "clk", Signal: "sysclk"},
				{Name: "SHIFT_OUT", Signal: signalName(inst.Index, "OUT")},
				{Name: "SHIFT_IN", Signal: signalName(inst.Index, "IN")},
				{Name: "SHIFT_CLK", Signal: signalName(inst.Index, "CLOCK")},
				{Name: "SHIFT_LOAD", Signal: signalName(inst.Index, "LOAD")},
				{Name: "data_in", Signal: busName(inst.Index, "INPUT")},
				{Name: "data_out", Signal: busName(inst.Index, "OUTPUT")},
			},
		}
		out = append(out, block.Verilog()...)
	}
	return out
}

// SourceFiles returns the Verilog source implementing the shift
// register module when at least one instance exists.
func (Plugin) SourceFiles(cfg *config.Config) []string {
	if len(cfg.Enumerate(SubType)) == 0 {
		return nil
	}
	return []string{SourceFile}
}

func signalName(index int, role string) string {
	return fmt.Sprintf("EXPANSION%d_SHIFTREG_%s", index, role)
}

func busName(index int, direction string) string {
	return fmt.Sprintf("EXPANSION%d_%s", index, direction)
}
