package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dirtyduck.club/storefront/internal/config"
	"dirtyduck.club/storefront/internal/httpserver"
	"dirtyduck.club/storefront/internal/i18n"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if g.logLevel != "" {
				cfg.LogLevel = g.logLevel
			}
			if g.contentFile != "" {
				cfg.ContentFile = g.contentFile
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; overrides DDC_ADDR and PORT")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, err := loadRegistry(cfg.ContentFile)
	if err != nil {
		return err
	}
	bundle, err := i18n.LoadEmbedded(cfg.DefaultLang)
	if err != nil {
		logger.Warn("default language unavailable, using built-in default",
			zap.String("lang", cfg.DefaultLang), zap.Error(err))
		if bundle, err = i18n.LoadDefault(); err != nil {
			return err
		}
	}

	srv, err := httpserver.New(httpserver.Config{
		Addr:          cfg.Addr,
		Registry:      reg,
		Bundle:        bundle,
		Logger:        logger,
		TitleInterval: cfg.TitleInterval,
		SecureCookies: cfg.IsProd(),
		Session:       cfg.Session,
		HTTP:          cfg.Server,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
