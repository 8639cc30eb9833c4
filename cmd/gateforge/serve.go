package main

import (
	"github.com/artpar/gateforge/bootstrap"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the configuration authoring API",
	Long: `Start the HTTP API used by configuration authoring tools.

Endpoints:
  GET  /api/schema      Plugin configuration schemas
  POST /api/validate    Validate a configuration document
  POST /api/generate    Run a generation pass
  GET  /metrics         Prometheus metrics
  GET  /healthz         Liveness

The server watches the config file and reloads on change or SIGHUP.

Examples:
  gateforge serve -c board.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap.New(bootstrap.Options{
		ConfigPath:    cfgFile,
		EnableMetrics: true,
		WatchConfig:   true,
	})
	if err != nil {
		return err
	}

	return a.Serve()
}
