package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artpar/gateforge/app"
	"github.com/artpar/gateforge/bootstrap"
	"github.com/artpar/gateforge/config"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate gateware fragments from the configuration",
	Long: `Run a generation pass: validate the configuration document, then
write the pin table, Verilog declarations, Verilog instantiations, and
the required source file list to the output directory.

Examples:
  gateforge generate -c board.yaml
  gateforge generate -c board.yaml --out build/gen
  gateforge generate -c board.yaml --watch`,
	RunE: runGenerate,
}

var (
	generateOut   string
	generateWatch bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateOut, "out", "", "output directory (default: output.dir from config)")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "regenerate whenever the config file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := bootstrap.New(bootstrap.Options{
		ConfigPath:  cfgFile,
		WatchConfig: generateWatch,
	})
	if err != nil {
		return err
	}
	defer a.Holder.Stop()

	if err := generateOnce(a); err != nil {
		return err
	}

	if !generateWatch {
		return nil
	}

	// Every successful reload triggers a fresh pass. Failed passes
	// are logged and the watcher keeps running.
	a.Holder.OnChange(func(*config.Config) {
		if err := generateOnce(a); err != nil {
			a.Logger.Error().Err(err).Msg("regeneration failed")
		}
	})

	a.Logger.Info().Msg("watching for configuration changes, ^C to stop")
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	return nil
}

func generateOnce(a *bootstrap.App) error {
	result, err := a.Generate()
	if err != nil {
		return reportValidationError(err)
	}

	dir := generateOut
	if dir == "" {
		dir = a.Holder.Get().Output.Dir
	}
	if err := app.WriteResult(dir, result); err != nil {
		return err
	}

	fmt.Printf("Generated into %s/\n", dir)
	fmt.Printf("  %s Pin bindings:    %d\n", checkMark, len(result.PinBindings))
	fmt.Printf("  %s Logical buses:   %d\n", checkMark, len(result.ResourceSizes))
	fmt.Printf("  %s Source files:    %d\n", checkMark, len(result.SourceFiles))
	for _, w := range result.Warnings {
		fmt.Printf("  ! %s: %s\n", w.Path, w.Message)
	}
	return nil
}

func reportValidationError(err error) error {
	if verr, ok := err.(*app.ValidationError); ok {
		for _, p := range verr.Result.Problems {
			fmt.Fprintf(os.Stderr, "  %s %s: %s\n", crossMark, p.Path, p.Message)
		}
	}
	return err
}
