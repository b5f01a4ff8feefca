/*
Package tls terminates HTTPS for the relay listener.

When security.tls.enabled is set, the server loads its key pair through a
CertificateReloader and serves it from tls.Config.GetCertificate, so a
renewed certificate is picked up without restarting:

	reloader := tls.NewCertificateReloader(cfg.CertFile, cfg.KeyFile, 0, logger)
	if err := reloader.Start(ctx); err != nil {
		return err
	}

	tlsConfig, err := tls.NewServerConfig(cfg, reloader)

Certificates that are expired or not yet valid are rejected on load. A
certificate within 30 days of expiry is logged as a warning.
*/
package tls
