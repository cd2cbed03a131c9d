package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/config"
	"dirtyduck.club/storefront/internal/i18n"
	"dirtyduck.club/storefront/internal/tui"
)

func newTUICmd(g *globalFlags) *cobra.Command {
	var (
		lang    string
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the storefront in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// the terminal is the UI; logs only go to a file when asked
			logger := zap.NewNop()
			if logFile != "" {
				level := cfg.LogLevel
				if g.logLevel != "" {
					level = g.logLevel
				}
				if logger, err = newLogger(level, logFile); err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			path := cfg.ContentFile
			if g.contentFile != "" {
				path = g.contentFile
			}
			reg, err := loadRegistry(path)
			if err != nil {
				return err
			}
			bundle, err := i18n.LoadDefault()
			if err != nil {
				return err
			}
			if lang == "" {
				lang = cfg.DefaultLang
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return tui.Run(ctx, reg, bundle.For(lang), tui.Options{
				TitleInterval: cfg.TitleInterval,
				Logger:        logger,
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Display language (ru, en); defaults to DDC_DEFAULT_LANG")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file")
	return cmd
}
