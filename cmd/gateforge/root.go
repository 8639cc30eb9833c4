package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gateforge",
	Short: "Plugin-driven FPGA gateware generator for I/O expansion boards",
	Long: `GateForge generates synthesizable Verilog fragments and pin
assignment tables from a declarative hardware configuration document.

Each expansion feature (shift-register chains, ...) is an
interchangeable plugin that contributes its own configuration schema,
physical pin bindings, bus sizing, and HDL fragments.

Quick start:
  gateforge validate -c board.yaml   # Check the configuration
  gateforge generate -c board.yaml   # Generate gateware fragments

Authoring:
  gateforge schema                   # Dump plugin schemas as JSON
  gateforge serve -c board.yaml      # Run the authoring API`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gateforge.yaml", "config file path")
}
