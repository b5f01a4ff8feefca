// Command relay-lambda serves the chat API from AWS Lambda behind an API
// Gateway REST proxy integration.
//
// Configuration is read from the file named by RELAY_CONFIG, or from the
// built-in defaults when it is unset, followed by the usual RELAY_*
// environment overrides. Provider keys come from the configured credential
// sources; credentials.sources: [ssm, env] is the typical Lambda setup.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/proxy/handlers"
	"mercator-hq/relay/pkg/routing"
	"mercator-hq/relay/pkg/security/secrets"
	"mercator-hq/relay/pkg/telemetry/health"
	"mercator-hq/relay/pkg/telemetry/logging"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfigWithEnvOverrides(os.Getenv("RELAY_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stdout))
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.Logger)

	creds, err := secrets.Build(ctx, secrets.BuildOptions{
		Sources:   cfg.Credentials.Sources,
		FileDir:   cfg.Credentials.FileDir,
		SSMPrefix: cfg.Credentials.SSMPrefix,
	})
	if err != nil {
		logger.Error("failed to build credential sources", "error", err)
		os.Exit(1)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	router, err := routing.NewFromConfig(cfg, creds,
		routing.WithTracer(tracer),
		routing.WithLogger(logger.Logger),
	)
	if err != nil {
		logger.Error("failed to create router", "error", err)
		os.Exit(1)
	}

	h, err := NewHandler(
		handlers.NewChatService(router, logger.Logger),
		health.New(0),
		tracer,
		cfg.Server.MaxBodyBytes,
		logger.Logger,
	)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
