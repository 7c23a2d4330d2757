// Package server assembles the HTTP surface: the registration routes,
// embedded assets, health and metrics endpoints, with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/goliatone/go-regform/components/registration"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

const (
	AssetsPath  = "/assets/"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"

	defaultAddr  = "127.0.0.1:8080"
	defaultGrace = 5 * time.Second
)

type config struct {
	addr         string
	basePath     string
	grace        time.Duration
	logger       *clog.Logger
	metrics      *metrics.Prometheus
	registration []registration.OptionFn
}

type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) {
		if strings.TrimSpace(addr) != "" {
			c.addr = addr
		}
	}
}

// WithBasePath mounts the registration routes under path.
func WithBasePath(path string) Option {
	return func(c *config) {
		c.basePath = path
	}
}

// WithGrace bounds how long Run waits for in-flight requests on shutdown.
func WithGrace(grace time.Duration) Option {
	return func(c *config) {
		if grace >= 0 {
			c.grace = grace
		}
	}
}

func WithLogger(logger *clog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records requests and form activity into rec and exposes it on
// /metrics.
func WithMetrics(rec *metrics.Prometheus) Option {
	return func(c *config) {
		c.metrics = rec
	}
}

// WithRegistration forwards options to the registration component.
func WithRegistration(fns ...registration.OptionFn) Option {
	return func(c *config) {
		c.registration = append(c.registration, fns...)
	}
}

// Server owns the mux and the http.Server built from it.
type Server struct {
	handler http.Handler
	routes  registration.Routes
	addr    string
	grace   time.Duration
	logger  *clog.Logger
}

// New builds the mux. Nothing listens until Run or Serve.
func New(options ...Option) (*Server, error) {
	cfg := config{
		addr:   defaultAddr,
		grace:  defaultGrace,
		logger: logging.L,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var rec metrics.Recorder = metrics.Nop{}
	if cfg.metrics != nil {
		rec = cfg.metrics
	}

	mux := http.NewServeMux()
	instrumented := instrumentedMux{mux: mux, rec: rec}

	regOptions := append([]registration.OptionFn{
		registration.WithMetrics(rec),
		registration.WithLogger(cfg.logger),
	}, cfg.registration...)
	routes, err := registration.RegisterRoutes(instrumented, cfg.basePath, regOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: register routes: %w", err)
	}

	instrumented.Handle(AssetsPath, http.StripPrefix(AssetsPath, http.FileServer(http.FS(vanilla.AssetsFS()))))
	instrumented.Handle(HealthPath, http.HandlerFunc(health))
	if cfg.metrics != nil {
		mux.Handle(MetricsPath, cfg.metrics.Handler())
	}
	if routes.Form != "/" {
		mux.Handle("/", rootRedirect(routes.Form))
	}

	return &Server{
		handler: mux,
		routes:  routes,
		addr:    cfg.addr,
		grace:   cfg.grace,
		logger:  cfg.logger,
	}, nil
}

// Handler exposes the mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Routes reports where the registration component was mounted.
func (s *Server) Routes() registration.Routes {
	return s.routes
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// within the grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String(), "form", s.routes.Form)
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("stopped")
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

type instrumentedMux struct {
	mux *http.ServeMux
	rec metrics.Recorder
}

func (m instrumentedMux) Handle(pattern string, handler http.Handler) {
	m.mux.Handle(pattern, metrics.Instrument(m.rec, pattern, handler))
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte("ok\n"))
	}
}

func rootRedirect(target string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
}
