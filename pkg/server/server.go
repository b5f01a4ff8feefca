package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/proxy"
	"mercator-hq/relay/pkg/proxy/handlers"
	"mercator-hq/relay/pkg/proxy/middleware"
	"mercator-hq/relay/pkg/proxy/types"
	"mercator-hq/relay/pkg/routing"
	relaytls "mercator-hq/relay/pkg/security/tls"
	"mercator-hq/relay/pkg/telemetry/health"
	"mercator-hq/relay/pkg/telemetry/metrics"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

// API routes served by the relay.
const (
	ChatPath    = "/api/chat"
	HealthPath  = "/api/health"
	ReadyPath   = "/api/ready"
	VersionPath = "/api/version"
)

// Options configures a Server. Config and Router are required.
type Options struct {
	Config  *config.Config
	Router  routing.Router
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Checker *health.Checker
	Logger  *slog.Logger

	Version   string
	Commit    string
	BuildTime string
}

// Server is the relay's HTTP server.
type Server struct {
	config  *config.Config
	router  routing.Router
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	checker *health.Checker
	logger  *slog.Logger

	version, commit, buildTime string

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// New creates a server. A "router" readiness check is registered that
// fails when any supported provider has no adapter.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Router == nil {
		return nil, fmt.Errorf("router is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Noop()
	}
	if opts.Checker == nil {
		opts.Checker = health.New(0)
	}

	s := &Server{
		config:    opts.Config,
		router:    opts.Router,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		checker:   opts.Checker,
		logger:    opts.Logger,
		version:   opts.Version,
		commit:    opts.Commit,
		buildTime: opts.BuildTime,
	}

	s.checker.RegisterCheck("router", s.checkRouter)

	return s, nil
}

// checkRouter verifies that every supported provider is dispatchable.
func (s *Server) checkRouter(context.Context) error {
	registered := make(map[providers.ProviderID]bool)
	for _, id := range s.router.Providers() {
		registered[id] = true
	}

	var missing []providers.ProviderID
	for _, id := range providers.All() {
		if !registered[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &routing.IncompleteDispatchError{Missing: missing}
	}
	return nil
}

// Start listens on the configured address and serves until ctx is
// cancelled, SIGINT or SIGTERM arrives, or the listener fails. It then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	cfg := s.config.Server
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	tlsEnabled := s.config.Security.TLS.Enabled
	if tlsEnabled {
		tlsCfg := s.config.Security.TLS
		reloader := relaytls.NewCertificateReloader(tlsCfg.CertFile, tlsCfg.KeyFile, 0, s.logger)
		if err := reloader.Start(ctx); err != nil {
			return s.abortStart(fmt.Errorf("failed to load TLS certificate: %w", err))
		}
		tlsConfig, err := relaytls.NewServerConfig(tlsCfg, reloader)
		if err != nil {
			return s.abortStart(fmt.Errorf("failed to configure TLS: %w", err))
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return s.abortStart(fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err))
	}

	s.mu.Lock()
	s.addr = listener.Addr()
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting relay server",
			"address", listener.Addr().String(),
			"tls_enabled", tlsEnabled,
		)

		var err error
		if tlsEnabled {
			err = s.httpServer.ServeTLS(listener, "", "")
		} else {
			err = s.httpServer.Serve(listener)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		_ = s.Shutdown(context.Background())
		return err
	}
}

func (s *Server) abortStart(err error) error {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()
	return err
}

// Shutdown drains in-flight requests, waiting at most
// server.shutdown_timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		s.mu.RUnlock()
		if !running {
			return
		}

		timeout := s.config.Server.ShutdownTimeout
		s.logger.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("relay server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the listener address once Start has bound it, or nil.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	chat := handlers.NewChatHandler(handlers.NewChatService(s.router, s.logger), s.config.Server.MaxBodyBytes)

	mux.Handle(ChatPath, chat)
	mux.Handle(HealthPath, s.checker.LivenessHandler())
	mux.Handle(ReadyPath, s.checker.ReadinessHandler())
	mux.Handle(VersionPath, health.VersionHandler(s.version, s.commit, s.buildTime))
	mux.Handle("/api/", http.HandlerFunc(notFound))

	routes := []string{ChatPath, HealthPath, ReadyPath, VersionPath}

	if s.metrics.Enabled() {
		path := s.config.Telemetry.Metrics.Path
		mux.Handle(path, s.metrics.Handler())
		routes = append(routes, path)
	}

	mux.Handle("/", s.staticHandler())

	return middleware.Chain(mux,
		middleware.RequestIDMiddleware,
		s.tracer.HTTPMiddleware,
		middleware.LoggingMiddleware(s.logger),
		middleware.RecoveryMiddleware(s.logger),
		middleware.MetricsMiddleware(s.metrics, routes...),
		middleware.SecurityHeadersMiddleware,
		middleware.CORSMiddleware(s.config.Server.CORS),
	)
}

// staticHandler serves server.static_dir, or answers 404 when it is unset
// or missing.
func (s *Server) staticHandler() http.Handler {
	dir := s.config.Server.StaticDir
	if dir == "" {
		return http.HandlerFunc(notFound)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		s.logger.Debug("static directory not found, static files disabled", "dir", dir)
		return http.HandlerFunc(notFound)
	}

	return http.FileServer(http.Dir(dir))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	_ = proxy.WriteErrorResponse(w, http.StatusNotFound, types.MessageNotFound)
}
