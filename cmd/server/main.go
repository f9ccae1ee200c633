package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/receipts/internal/app"
	"github.com/mmynk/receipts/internal/config"
	"github.com/mmynk/receipts/internal/web"
	"github.com/mmynk/receipts/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	staticDir := ""
	if cfg.StaticPath != "" {
		if staticDir, err = filepath.Abs(cfg.StaticPath); err != nil {
			return err
		}
		slog.Info("Serving static files", "path", staticDir)
	}

	router := web.NewRouter(web.Deps{
		Ledger:        a.LedgerService(),
		Admin:         a.AdminService(),
		Expenses:      a.Expenses,
		Profiles:      a.Profiles,
		Renderer:      a.Renderer,
		Authenticator: a.Authenticator,
		JWTManager:    a.JWTManager,
		Metrics:       a.Metrics,
		Gatherer:      a.Registry,
		StaticPath:    staticDir,
	})

	// h2c serves HTTP/2 without TLS for Connect clients
	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        h2c.NewHandler(router, &http2.Server{}),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   cfg.ExtractTimeout + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Receipts server starting", "address", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
