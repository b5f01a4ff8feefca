package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/relay/pkg/cli"
	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providerfactory"
	"mercator-hq/relay/pkg/routing"
	"mercator-hq/relay/pkg/security/secrets"
	"mercator-hq/relay/pkg/server"
	"mercator-hq/relay/pkg/telemetry/health"
	"mercator-hq/relay/pkg/telemetry/logging"
	"mercator-hq/relay/pkg/telemetry/metrics"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

// readinessTimeout bounds each readiness check, including credential
// lookups against remote stores.
const readinessTimeout = 3 * time.Second

var runFlags struct {
	listenAddress string
	logLevel      string
	watch         bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	Long: `Start the relay HTTP server with the specified configuration.

Examples:
  # Start with defaults (or ./config.yaml when present)
  relay run

  # Start with a config file and apply edits without restarting
  relay run --config /etc/relay/config.yaml --watch

  # Override listen address
  relay run --listen 0.0.0.0:8080

  # Validate config and wiring without starting the server
  relay run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload the config file when it changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(path, err)
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stdout))
	if err != nil {
		return cli.NewConfigError(path, err)
	}
	slog.SetDefault(logger.Logger)

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	creds, err := secrets.Build(ctx, secrets.BuildOptions{
		Sources:   cfg.Credentials.Sources,
		FileDir:   cfg.Credentials.FileDir,
		SSMPrefix: cfg.Credentials.SSMPrefix,
	})
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to build credential sources: %w", err))
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithServiceVersion(Version))
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	routerOpts := []routing.Option{
		routing.WithMetrics(collector),
		routing.WithTracer(tracer),
		routing.WithLogger(logger.Logger),
	}

	router, err := routing.NewFromConfig(cfg, creds, routerOpts...)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if runFlags.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration valid (providers: %s)\n", joinProviders(router))
		return nil
	}

	swappable := routing.NewSwappable(router)

	var current atomic.Pointer[config.Config]
	current.Store(cfg)

	checker := health.New(readinessTimeout)
	checker.RegisterCheck("credentials", func(ctx context.Context) error {
		_, err := providerfactory.CheckCredentials(ctx, current.Load(), creds)
		return err
	})

	srv, err := server.New(server.Options{
		Config:    cfg,
		Router:    swappable,
		Metrics:   collector,
		Tracer:    tracer,
		Checker:   checker,
		Logger:    logger.Logger,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if runFlags.watch {
		if path == "" {
			return cli.NewCommandError("run", fmt.Errorf("--watch requires a config file"))
		}

		watcher, err := config.NewWatcher(path, logger.Logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}

		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) {
				if runFlags.logLevel != "" {
					next.Telemetry.Logging.Level = runFlags.logLevel
				}
				if err := logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
					logger.Warn("invalid log level in reloaded config", "error", err)
				}

				rebuilt, err := routing.NewFromConfig(next, creds, routerOpts...)
				if err != nil {
					logger.Error("failed to rebuild router, keeping previous one", "error", err)
					return
				}
				swappable.Swap(rebuilt)
				current.Store(next)

				logger.Info("router swapped after config reload",
					"providers", joinProviders(rebuilt),
				)
			})
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("relay starting",
		"version", Version,
		"config", path,
		"providers", joinProviders(router),
		"credential_sources", cfg.Credentials.Sources,
	)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	stats := swappable.GetStats()
	logger.Info("relay stopped",
		"requests", stats.TotalRequests,
		"errors", stats.Errors,
		"per_provider", stats.RequestsPerProvider,
		"uptime", time.Since(stats.Since).Round(time.Second).String(),
	)
	return nil
}

func joinProviders(r routing.Router) string {
	ids := r.Providers()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
