package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownHook runs after the stop signal but before the servers shut down.
// Errors are logged and shutdown continues.
type ShutdownHook func(ctx context.Context) error

// RunServersWithShutdown starts every server and blocks until ctx is done or
// one of them fails to listen. Hooks then run in order, each with its own
// timeout, and finally all servers are shut down within shutdownTimeout.
func RunServersWithShutdown(ctx context.Context, logger *zap.Logger, cfg TimeoutConfig, servers []*http.Server, hooks ...ShutdownHook) error {
	hookTimeout := cfg.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, server := range servers {
		g.Go(func() error {
			logger.Info("starting server", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
		defer cancel()
		for i, h := range hooks {
			if h == nil {
				continue
			}
			hCtx, hCancel := context.WithTimeout(shutdownCtx, hookTimeout)
			if err := h(hCtx); err != nil {
				logger.Warn("shutdown hook failed", zap.Int("hook", i), zap.Error(err))
			}
			if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
				logger.Warn("shutdown hook timed out", zap.Int("hook", i))
			}
			hCancel()
		}
		for _, server := range servers {
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.String("addr", server.Addr), zap.Error(err))
			}
		}
		logger.Info("shutdown complete")
		return nil
	})
	return g.Wait()
}

// TimeoutConfig holds server and shutdown related timeouts.
type TimeoutConfig struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
	Hook       time.Duration
}

var DefaultTimeouts = TimeoutConfig{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      30 * time.Second,
	Idle:       60 * time.Second,
	Shutdown:   15 * time.Second,
	Hook:       5 * time.Second,
}

// LoadTimeoutConfig overrides defaults from the environment. Each value is a
// whole number of seconds; unparsable or non-positive values are ignored.
//
//	READ_HEADER_TIMEOUT
//	READ_TIMEOUT
//	WRITE_TIMEOUT
//	IDLE_TIMEOUT
//	SHUTDOWN_TIMEOUT
//	HOOK_TIMEOUT
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	apply := func(curr *time.Duration, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*curr = time.Duration(n) * time.Second
			}
		}
	}
	apply(&defaults.ReadHeader, "READ_HEADER_TIMEOUT")
	apply(&defaults.Read, "READ_TIMEOUT")
	apply(&defaults.Write, "WRITE_TIMEOUT")
	apply(&defaults.Idle, "IDLE_TIMEOUT")
	apply(&defaults.Shutdown, "SHUTDOWN_TIMEOUT")
	apply(&defaults.Hook, "HOOK_TIMEOUT")
	return defaults
}

func NewServerWithTimeouts(addr string, handler http.Handler, cfg TimeoutConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeader,
		ReadTimeout:       cfg.Read,
		WriteTimeout:      cfg.Write,
		IdleTimeout:       cfg.Idle,
	}
}
