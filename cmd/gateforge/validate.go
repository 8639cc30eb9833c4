package main

import (
	"fmt"
	"os"

	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/validation"
	"github.com/artpar/gateforge/plugins/shiftreg"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration before generating",
	Long: `Validate the GateForge configuration document.

Checks:
  - YAML/JSON syntax is valid
  - Every expansion entry matches a registered plugin schema
  - Required pin roles are assigned and no physical pin is double-booked
  - Clock derivations produce a usable shift clock

Examples:
  gateforge validate
  gateforge validate --config boards/tinyfpga-bx.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	// Check file exists
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Printf("  %s Config file exists\n", checkMark)

	// Load and parse config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config syntax valid\n", checkMark)

	// Validate against plugin schemas
	reg := registry.New()
	if err := reg.Register(shiftreg.New()); err != nil {
		return err
	}
	result := validation.New(reg).Validate(cfg)

	for _, p := range result.Problems {
		mark := crossMark
		if p.Severity == validation.SeverityWarning {
			mark = "!"
		}
		fmt.Printf("  %s %s: %s\n", mark, p.Path, p.Message)
	}
	if !result.Valid() {
		return fmt.Errorf("configuration invalid")
	}

	// Show config summary
	fmt.Printf("  %s System clock: %d Hz\n", checkMark, cfg.Clock.Speed)
	fmt.Printf("  %s Expansion entries: %d\n", checkMark, len(cfg.Expansion))
	fmt.Printf("  %s Shiftreg instances: %d\n", checkMark, len(cfg.Enumerate(shiftreg.SubType)))

	fmt.Printf("\nConfiguration valid\n")
	return nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
