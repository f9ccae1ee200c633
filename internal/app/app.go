// Package app wires configuration into the stores, ledgers and services
// shared by the server and the CLI.
package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mmynk/receipts/internal/auth"
	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/config"
	"github.com/mmynk/receipts/internal/extract"
	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/metrics"
	"github.com/mmynk/receipts/internal/profile"
	"github.com/mmynk/receipts/internal/report"
	"github.com/mmynk/receipts/internal/service"
	"github.com/mmynk/receipts/internal/storage/sqlite"
)

// App holds the long-lived components.
type App struct {
	Config config.Config

	Store     *sqlite.SQLiteStore
	Expenses  *ledger.Expenses
	Inventory *ledger.Inventory
	Composer  *billing.Composer
	Renderer  *report.Renderer
	Profiles  *profile.Store

	// Extractor is nil when no Gemini key is configured.
	Extractor extract.Extractor

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Authenticator *auth.PasswordAuthenticator
	JWTManager    *auth.JWTManager

	closers []io.Closer
}

// New opens the database and builds every component.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Store = store
	a.closers = append(a.closers, store)
	slog.Info("Storage initialized", "database", cfg.DBPath)

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.New(a.Registry)

	a.Expenses = ledger.NewExpenses(store)
	a.Inventory = ledger.NewInventory(store, cfg.LowStockThreshold)
	a.Renderer = report.New(cfg.Currency)
	a.Profiles = profile.NewStore(cfg.ProfilePath)
	a.Composer = billing.NewComposer(a.Inventory, store,
		billing.WithRenderer(a.Renderer),
		billing.WithMetrics(a.Metrics),
	)

	if err := a.setupExtractor(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if err := a.setupAuth(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) setupExtractor(ctx context.Context) error {
	cfg := a.Config
	if !cfg.ExtractionEnabled() {
		slog.Info("Receipt extraction disabled", "reason", "no GEMINI_API_KEY")
		return nil
	}

	gemini, err := extract.NewGemini(ctx, extract.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.ExtractTimeout,
		Attempts:   cfg.ExtractAttempts,
		RetryDelay: 2 * time.Second,
	})
	if err != nil {
		return err
	}
	a.Extractor = gemini

	if cfg.ExtractCachePath != "" {
		cache, err := extract.NewCache(cfg.ExtractCachePath, gemini)
		if err != nil {
			return err
		}
		a.Extractor = cache
		a.closers = append(a.closers, cache)
	}

	slog.Info("Receipt extraction enabled", "model", cfg.GeminiModel, "cache", cfg.ExtractCachePath)
	return nil
}

func (a *App) setupAuth() error {
	authenticator, err := auth.NewPasswordAuthenticator(a.Config.AdminPasswordHash)
	if err != nil {
		return err
	}
	a.Authenticator = authenticator

	secret := a.Config.JWTSecret
	if secret == "" {
		// Tokens are only decorative while admin calls are open.
		secret = rand.Text()
	}
	a.JWTManager = auth.NewJWTManager(secret, a.Config.TokenTTL)

	if !authenticator.Enabled() {
		slog.Warn("Admin password not set, admin procedures are open")
	}
	return nil
}

// LedgerService builds the ledger RPC service.
func (a *App) LedgerService() *service.LedgerService {
	return service.NewLedgerService(service.LedgerDeps{
		Expenses:  a.Expenses,
		Inventory: a.Inventory,
		Composer:  a.Composer,
		Profiles:  a.Profiles,
		Extractor: a.Extractor,
		Metrics:   a.Metrics,
	})
}

// AdminService builds the admin RPC service.
func (a *App) AdminService() *service.AdminService {
	return service.NewAdminService(a.Authenticator, a.JWTManager, a.Expenses, a.Inventory, a.Profiles)
}

// Close releases the database and cache files.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
