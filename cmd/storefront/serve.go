package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/messaging"
	"github.com/matst80/slask-catalog/pkg/server"
	"github.com/matst80/slask-catalog/pkg/tracking"
)

var (
	listenAddress  string
	debugAddress   string
	watchCatalog   bool
	enableProfiler bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront over http",
	Long: `Serves the catalog pages and the json api. Health, metrics and optional
profiling are served on the debug address.

With RABBIT_URL set, visitor events are published for tracking and catalog
changes announced by "storefront check --notify" trigger a reload.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddress, "listen", "", "listen address (overrides LISTEN_ADDRESS)")
	serveCmd.Flags().StringVar(&debugAddress, "debug-listen", "", "debug listen address (overrides DEBUG_ADDRESS)")
	serveCmd.Flags().BoolVar(&watchCatalog, "watch", false, "reload the catalog when the file changes")
	serveCmd.Flags().BoolVar(&enableProfiler, "pprof", false, "serve pprof on the debug address")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddress = listenAddress
	}
	if cmd.Flags().Changed("debug-listen") {
		cfg.DebugAddress = debugAddress
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	ws := server.NewWebServer(nil, renderer, logger)
	ws.PageStep = cfg.PageStep
	ws.Sections = cfg.Sections
	ws.ImageDir = cfg.Export.ImageDir

	store := newStore(catalog.WithChangeHandler(ws.OnCatalogChange))
	if err := store.Load(); err != nil {
		return err
	}
	ws.Store = store

	hooks := []common.ShutdownHook{}
	if cfg.RedisUrl != "" {
		ws.Cache = server.NewCache(cfg.RedisUrl, cfg.RedisPassword, 0, 10*time.Minute)
	} else {
		ws.Cache = server.NewCache("", "", 0, time.Minute)
	}
	ws.Cache.Logger = logger
	hooks = append(hooks, func(context.Context) error {
		return ws.Cache.Close()
	})

	if cfg.RabbitUrl != "" {
		trk, err := tracking.NewRabbitTracking(cfg.RabbitUrl, logger)
		if err != nil {
			logger.Warn("tracking disabled, failed to connect to rabbitmq", zap.Error(err))
		} else {
			ws.Tracking = trk
			hooks = append(hooks, func(context.Context) error {
				return trk.Close()
			})
		}

		bus, err := messaging.DialCatalogBus(cfg.RabbitUrl, logger)
		if err != nil {
			logger.Warn("catalog change listener disabled", zap.Error(err))
		} else {
			err = bus.OnChange(func(change messaging.CatalogChange) {
				logger.Info("catalog change announced", zap.String("generatedAt", change.GeneratedAt))
				if err := store.Load(); err != nil {
					logger.Error("catalog reload failed, keeping previous version", zap.Error(err))
				}
			})
			if err != nil {
				return err
			}
			hooks = append(hooks, func(context.Context) error {
				return bus.Close()
			})
		}
	}

	if watchCatalog {
		if err := store.Watch(ctx); err != nil {
			return err
		}
	}

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts)
	servers := []*http.Server{
		common.NewServerWithTimeouts(cfg.ListenAddress, ws.Handler(), timeouts),
	}
	if cfg.DebugAddress != "" {
		servers = append(servers, common.NewServerWithTimeouts(cfg.DebugAddress, ws.DebugHandler(enableProfiler), timeouts))
	}
	return common.RunServersWithShutdown(ctx, logger, timeouts, servers, hooks...)
}
