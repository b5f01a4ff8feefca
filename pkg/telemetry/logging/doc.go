// Package logging provides structured logging with credential redaction.
//
// # Overview
//
// The logging package builds a log/slog logger whose handler:
//   - writes JSON, text, or console output
//   - redacts provider API keys, bearer tokens and key headers
//   - adds request_id and provider from the context
//   - adds trace_id and span_id when an OpenTelemetry span is active
//
// The level is held in a slog.LevelVar so a configuration reload can change
// it without rebuilding the logger.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "chat request completed",
//	    "provider", "openai",
//	    "api_key", key, // masked
//	)
//
// # Redaction
//
//   - OpenAI keys: sk-abc123xyz... becomes sk-***
//   - Anthropic keys: sk-ant-api03-... becomes sk-ant-***
//   - Google keys: AIzaSy... becomes AIza***
//   - Authorization headers: Bearer abc... becomes Bearer ***
//
// Values logged under keys such as "api_key", "token" or "secret" are masked
// regardless of their content. Message contents are never logged.
package logging
