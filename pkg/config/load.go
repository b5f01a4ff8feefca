package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every configuration override variable.
const EnvPrefix = "RELAY_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded on top of NewDefault, then defaults are applied and
// the result is validated. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// variable overrides. An empty path skips the file and starts from
// NewDefault.
//
// The loading sequence is:
// 1. Load YAML from file (or defaults)
// 2. Apply PORT, then RELAY_SECTION_FIELD overrides
// 3. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefault()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// envReader is os.LookupEnv or a test double.
type envReader func(string) (string, bool)

func (r envReader) get(name string) (string, bool) {
	val, ok := r(name)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// applyEnvOverrides applies environment variable overrides to cfg.
// A malformed value is an error rather than being silently ignored.
func applyEnvOverrides(cfg *Config, lookup envReader) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val, ok := lookup.get(name); ok {
			*dst = val
		}
	}
	dur := func(name string, dst *time.Duration) {
		if val, ok := lookup.get(name); ok {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid duration %q", val)})
				return
			}
			*dst = d
		}
	}
	boolean := func(name string, dst *bool) {
		if val, ok := lookup.get(name); ok {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid boolean %q", val)})
				return
			}
			*dst = b
		}
	}
	float := func(name string, dst *float64) {
		if val, ok := lookup.get(name); ok {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid number %q", val)})
				return
			}
			*dst = f
		}
	}
	list := func(name string, dst *[]string) {
		if val, ok := lookup.get(name); ok {
			var items []string
			for _, item := range strings.Split(val, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*dst = items
		}
	}

	// PORT is the conventional platform variable; the explicit listen
	// address override below takes precedence over it.
	if port, ok := lookup.get("PORT"); ok {
		cfg.Server.ListenAddress = net.JoinHostPort("", port)
	}

	// Server overrides
	str(EnvPrefix+"SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	dur(EnvPrefix+"SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	dur(EnvPrefix+"SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	dur(EnvPrefix+"SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	dur(EnvPrefix+"SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	str(EnvPrefix+"SERVER_STATIC_DIR", &cfg.Server.StaticDir)
	if val, ok := lookup.get(EnvPrefix + "SERVER_MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: EnvPrefix + "SERVER_MAX_BODY_BYTES", Message: fmt.Sprintf("invalid integer %q", val)})
		} else {
			cfg.Server.MaxBodyBytes = n
		}
	}

	// Provider overrides
	for _, name := range KnownProviders {
		prefix := fmt.Sprintf("%sPROVIDERS_%s_", EnvPrefix, strings.ToUpper(name))
		provider := cfg.Provider(name)
		before := provider

		str(prefix+"BASE_URL", &provider.BaseURL)
		str(prefix+"MODEL", &provider.Model)
		str(prefix+"CREDENTIAL_KEY", &provider.CredentialKey)
		dur(prefix+"TIMEOUT", &provider.Timeout)

		if provider != before {
			if cfg.Providers == nil {
				cfg.Providers = make(map[string]ProviderConfig)
			}
			cfg.Providers[name] = provider
		}
	}

	// Credential overrides
	list(EnvPrefix+"CREDENTIALS_SOURCES", &cfg.Credentials.Sources)
	str(EnvPrefix+"CREDENTIALS_FILE_DIR", &cfg.Credentials.FileDir)
	str(EnvPrefix+"CREDENTIALS_SSM_PREFIX", &cfg.Credentials.SSMPrefix)

	// Telemetry overrides
	str(EnvPrefix+"TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str(EnvPrefix+"TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean(EnvPrefix+"TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	str(EnvPrefix+"TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	boolean(EnvPrefix+"TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	str(EnvPrefix+"TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	float(EnvPrefix+"TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)

	// Security overrides
	boolean(EnvPrefix+"SECURITY_TLS_ENABLED", &cfg.Security.TLS.Enabled)
	str(EnvPrefix+"SECURITY_TLS_CERT_FILE", &cfg.Security.TLS.CertFile)
	str(EnvPrefix+"SECURITY_TLS_KEY_FILE", &cfg.Security.TLS.KeyFile)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
