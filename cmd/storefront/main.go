package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/catalog"
	"dirtyduck.club/storefront/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel    string
	contentFile string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Dirty Duck Club storefront",
		Long: `storefront serves the Dirty Duck Club catalog: a welcome letter, the shop,
the knowledge base and reviews, with a decorative cart.

Run it as a web server with htmx fragments, in the terminal, or use it to check
a content document before deploying it.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides DDC_LOG_LEVEL")
	root.PersistentFlags().StringVar(&g.contentFile, "content", "", "Content YAML file; overrides DDC_CONTENT_FILE, embedded content when empty")

	root.AddCommand(newServeCmd(g), newTUICmd(g), newCatalogCmd(g))
	return root
}

// loadRegistry returns the registry from path, or the embedded one when path is empty.
func loadRegistry(path string) (*catalog.Registry, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

func newLogger(level string, paths ...string) (*zap.Logger, error) {
	logger, err := logging.New(level, paths...)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
