// Package main is the entry point for GateForge, a plugin-driven
// FPGA gateware generator. It turns a declarative hardware
// configuration document into synthesizable Verilog fragments and a
// physical pin-assignment table.
package main

func main() {
	Execute()
}
