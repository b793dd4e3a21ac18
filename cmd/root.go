package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/deckseer/internal/catalog"
	"github.com/arcanaland/deckseer/internal/config"
)

var (
	// Global flags
	verbose    bool
	catalogDir string
	catalogURL string

	logger *zap.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckseer",
	Short: "Browse a card catalog and its similar-card recommendations",
	Long: `Deckseer is a command-line tool for browsing Magic card catalogs exported by the
recommendation pipeline. It filters cards by color, type and name, and shows
the cards recommended alongside each card, grouped by mode and color.

Catalogs are read from a static file server (catalog_url) or a local
directory (catalog_dir), one file per mode and color selection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		// Initialize logger
		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zapcore.InfoLevel
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "Read catalogs from a local directory")
	RootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "Read catalogs from a base URL")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// newCache builds a catalog cache from flags, falling back to the config.
// A catalog directory wins over a URL.
func newCache(cfg *config.Config) *catalog.Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir, url := cfg.CatalogDir, cfg.CatalogURL
	if catalogURL != "" {
		url, dir = catalogURL, ""
	}
	if catalogDir != "" {
		dir = catalogDir
	}

	var fetcher catalog.Fetcher
	if dir != "" {
		logger.Debug("using catalog directory", zap.String("dir", dir))
		fetcher = catalog.DirFetcher{Dir: dir}
	} else {
		logger.Debug("using catalog URL", zap.String("url", url))
		fetcher = catalog.NewHTTPFetcher(url)
	}

	return catalog.NewCache(fetcher, logger)
}
