package tls

import (
	"crypto/tls"
	"fmt"

	"mercator-hq/relay/pkg/config"
)

// NewServerConfig builds the listener's tls.Config from cfg. The
// certificate is served through reloader so renewed files are picked up
// without a restart. It returns nil when TLS is disabled.
func NewServerConfig(cfg config.TLSConfig, reloader *CertificateReloader) (*tls.Config, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if reloader == nil {
		return nil, fmt.Errorf("certificate reloader is required when TLS is enabled")
	}
	if reloader.GetCertificate() == nil {
		return nil, fmt.Errorf("certificate has not been loaded from %s", cfg.CertFile)
	}

	minVersion, err := parseTLSVersion(cfg.MinVersion)
	if err != nil {
		return nil, err
	}

	// #nosec G402 - MinVersion is validated (TLS 1.0/1.1 rejected)
	return &tls.Config{
		MinVersion:     minVersion,
		GetCertificate: reloader.GetCertificateFunc(),
	}, nil
}

// parseTLSVersion converts the configured minimum version to a tls constant.
// Only "1.2" (the default) and "1.3" are accepted.
func parseTLSVersion(version string) (uint16, error) {
	switch version {
	case "1.2", "":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("unsupported TLS min_version %q (supported: 1.2, 1.3)", version)
	}
}
