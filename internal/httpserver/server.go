// Package httpserver serves the storefront over HTTP with htmx fragments.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/config"
	"dirtyduck.club/storefront/internal/i18n"
	mw "dirtyduck.club/storefront/internal/middleware"
	"dirtyduck.club/storefront/internal/session"
	"dirtyduck.club/storefront/internal/shell"
)

// Config wires the server dependencies. Zero values get sensible defaults.
type Config struct {
	Addr          string
	Registry      *catalog.Registry
	Bundle        *i18n.Bundle
	Logger        *zap.Logger
	TitleInterval time.Duration
	// SecureCookies marks cookies Secure; enable behind TLS.
	SecureCookies bool
	Session       config.SessionConfig
	HTTP          config.ServerConfig
}

// Server is the storefront web surface.
type Server struct {
	cfg      Config
	reg      *catalog.Registry
	bundle   *i18n.Bundle
	logger   *zap.Logger
	store    *session.Store
	codec    *session.Codec
	tmpl     *renderer
	handler  http.Handler
	srv      *http.Server
	interval time.Duration
}

// New builds the router and session store. Call Shutdown to release them.
func New(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		cfg.Registry = catalog.Default()
	}
	if cfg.Bundle == nil {
		b, err := i18n.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("load i18n: %w", err)
		}
		cfg.Bundle = b
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TitleInterval <= 0 {
		cfg.TitleInterval = shell.DefaultTitleInterval
	}
	if cfg.HTTP.RequestTimeout <= 0 {
		cfg.HTTP.RequestTimeout = 30 * time.Second
	}

	tmpl, err := newRenderer()
	if err != nil {
		return nil, err
	}

	if cfg.Session.HashKey == "" {
		cfg.Logger.Warn("session: using ephemeral hash key, set DDC_SESSION_HASH_KEY to keep sessions across restarts")
	}
	codec, err := session.NewCodec([]byte(cfg.Session.HashKey), []byte(cfg.Session.BlockKey), cfg.SecureCookies, cfg.Session.IdleTimeout)
	if err != nil {
		return nil, err
	}

	reg := cfg.Registry
	interval := cfg.TitleInterval
	store := session.NewStore(func() *shell.Shell {
		return shell.New(shell.WithProducts(reg), shell.WithTitleInterval(interval))
	}, session.Options{
		IdleTimeout: cfg.Session.IdleTimeout,
		MaxSessions: cfg.Session.MaxSessions,
		Logger:      cfg.Logger.Named("session"),
	})

	s := &Server{
		cfg:      cfg,
		reg:      reg,
		bundle:   cfg.Bundle,
		logger:   cfg.Logger,
		store:    store,
		codec:    codec,
		tmpl:     tmpl,
		interval: interval,
	}
	s.handler = s.routes()
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: orDefault(cfg.HTTP.ReadHeaderTimeout, 10*time.Second),
		ReadTimeout:       orDefault(cfg.HTTP.ReadTimeout, 15*time.Second),
		WriteTimeout:      orDefault(cfg.HTTP.WriteTimeout, 15*time.Second),
		IdleTimeout:       orDefault(cfg.HTTP.IdleTimeout, 60*time.Second),
		ErrorLog:          zap.NewStdLog(cfg.Logger),
	}
	return s, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.RequestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(s.cfg.HTTP.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(staticFS())))

	r.Group(func(r chi.Router) {
		r.Use(mw.Locale(s.bundle))
		r.Use(mw.VaryLocale)
		r.Use(mw.CSRF(s.cfg.SecureCookies))
		r.Use(mw.Session(s.store, s.codec))

		r.Get("/", s.handleHome)
		r.Post("/tabs/{tab}", s.handleSelectTab)
		r.Post("/cart/{productID}", s.handleToggleCart)
		r.Get("/header/title", s.handleTitle)
		r.Get("/guide/{sectionID}/{index}", s.handleGuideNotice)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
	})
	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Sessions reports the number of live visitor sessions.
func (s *Server) Sessions() int { return s.store.Len() }

// ListenAndServe blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("storefront listening", zap.String("addr", s.cfg.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and then closes every visitor shell.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	if cerr := s.store.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}
