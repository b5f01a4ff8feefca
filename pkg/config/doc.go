// Package config provides configuration management for the relay.
//
// Configuration is read from a YAML file, overlaid with environment
// variables and validated before use. Every field has a default, so the
// relay runs with no file at all.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
//  3. From defaults plus environment variables:
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// # Environment Variable Overrides
//
// PORT sets the listen address to ":<PORT>". Other variables follow the
// naming convention RELAY_SECTION_FIELD and take precedence over PORT:
//
//   - RELAY_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - RELAY_PROVIDERS_OPENAI_MODEL overrides providers.openai.model
//   - RELAY_CREDENTIALS_SOURCES overrides credentials.sources (comma separated)
//   - RELAY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Provider API keys are never part of the configuration. Each provider
// section names a credential key that is resolved at call time through the
// configured credential sources.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Reloading
//
// Watcher observes the file with fsnotify and hands each configuration that
// validates to a callback. The server uses it to rebuild the provider
// dispatch table without a restart.
//
// # Example Configuration
//
//	server:
//	  listen_address: ":3000"
//
//	providers:
//	  openai:
//	    model: "gpt-4o-mini"
//	  anthropic:
//	    credential_key: "ANTHROPIC_API_KEY"
//	    timeout: "60s"
//
//	credentials:
//	  sources: ["env", "file"]
//	  file_dir: "/run/secrets"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
