// Package bootstrap wires the application together: configuration,
// logging, the plugin registry, the generator, and the optional
// authoring API server.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpar/gateforge/adapters/idgen"
	"github.com/artpar/gateforge/adapters/metrics"
	"github.com/artpar/gateforge/app"
	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/plugins/shiftreg"
	"github.com/artpar/gateforge/web"
	"github.com/rs/zerolog"
)

// Environment variables overriding the document's logging section.
const (
	EnvLogLevel  = "GATEFORGE_LOG_LEVEL"
	EnvLogFormat = "GATEFORGE_LOG_FORMAT"
)

// App holds the wired application.
type App struct {
	Holder    *config.Holder
	Logger    zerolog.Logger
	Registry  *registry.Registry
	Generator *app.Generator
	Metrics   *metrics.Collector

	httpServer *http.Server
}

// Options controls which optional pieces are wired.
type Options struct {
	// ConfigPath is the configuration document to load.
	ConfigPath string

	// EnableMetrics wires the Prometheus collector. Only the serve
	// command wants this; one-shot CLI runs have nowhere to scrape.
	EnableMetrics bool

	// WatchConfig starts the fsnotify watcher and SIGHUP handler.
	WatchConfig bool
}

// New creates a fully wired application.
func New(opts Options) (*App, error) {
	// Load once up front so the logger honors the document's logging
	// section before the holder starts reporting reloads.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cfg.Logging)

	holder, err := config.NewHolder(opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if err := registerPlugins(reg); err != nil {
		return nil, fmt.Errorf("register plugins: %w", err)
	}

	a := &App{
		Holder:   holder,
		Logger:   logger,
		Registry: reg,
	}

	a.Generator = app.NewGenerator(reg, idgen.UUID{}, logger)
	if opts.EnableMetrics {
		a.Metrics = metrics.New()
		a.Generator.WithMetrics(a.Metrics)
	}

	if opts.WatchConfig {
		if err := holder.WatchFile(); err != nil {
			return nil, fmt.Errorf("watch config: %w", err)
		}
		holder.WatchSignals()
		if a.Metrics != nil {
			holder.OnChange(func(*config.Config) { a.Metrics.ConfigReloads.Inc() })
		}
	}

	for _, p := range reg.List() {
		logger.Info().Str("plugin", p.Describe().SubType).Msg("expansion plugin registered")
	}

	return a, nil
}

// registerPlugins registers every built-in expansion plugin.
func registerPlugins(reg *registry.Registry) error {
	return reg.Register(shiftreg.New())
}

// Generate runs one generation pass over the current configuration.
func (a *App) Generate() (*app.Result, error) {
	return a.Generator.Run(a.Holder.Get())
}

// Serve runs the authoring API until interrupted.
func (a *App) Serve() error {
	cfg := a.Holder.Get()

	handler := web.NewHandler(web.Deps{
		Registry:  a.Registry,
		Generator: a.Generator,
		Metrics:   a.Metrics,
		Logger:    a.Logger,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.httpServer.Addr).
			Msg("starting authoring api server")
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	a.Holder.Stop()
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	levelStr := os.Getenv(EnvLogLevel)
	if levelStr == "" {
		levelStr = cfg.Level
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	format := os.Getenv(EnvLogFormat)
	if format == "" {
		format = cfg.Format
	}
	if format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
