// Command dashboard-server serves the GEOS-Chem benchmark dashboard over the
// configured registry store.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gcdashboard/internal/artifacts"
	"gcdashboard/internal/regstore"
	"gcdashboard/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	addr := flag.String("addr", envOr("GCDASH_HTTP_ADDR", ":8080"), "listen address")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := regstore.Open(ctx)
	if err != nil {
		logger.Error("registry store init failed", "error", err)
		os.Exit(2)
	}

	handler := web.NewHandler(store)
	if region := os.Getenv("GCDASH_PRESIGN_REGION"); region != "" {
		presigner, err := artifacts.Open(ctx, region)
		if err != nil {
			logger.Error("artifact presigner init failed", "error", err)
			os.Exit(2)
		}
		handler.Presigner = presigner
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           web.NewServeMux(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("dashboard server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
