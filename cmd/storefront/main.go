package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/marketplace"
	"github.com/matst80/slask-catalog/pkg/pages"
	"github.com/matst80/slask-catalog/pkg/storage"
)

var (
	configFile  string
	envFile     string
	catalogFile string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Gift bag catalog storefront",
	Long: `storefront serves the gift bag catalog with faceted filtering, or exports
it as a static site.

Settings are read from the yaml config, a .env file and the environment,
flags override all of them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile, envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		flags := cmd.Flags()
		if flags.Changed("catalog") {
			cfg.CatalogFile = catalogFile
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		logger, err = common.NewLogger(cfg.LogLevel)
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
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "storefront.yaml", "yaml config file, ignored when missing")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file, ignored when missing")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog json file (overrides CATALOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd, exportCmd, checkCmd)
}

func newStore(opts ...catalog.Option) *catalog.Store {
	opts = append([]catalog.Option{catalog.WithLogger(logger)}, opts...)
	return catalog.NewStore(storage.NewDiskStorage(""), cfg.CatalogFile, opts...)
}

func newRenderer() (*pages.Renderer, error) {
	return pages.NewRenderer(cfg.BasePath, cfg.ContactEmail, marketplace.NewLinker(cfg.Marketplaces...))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
