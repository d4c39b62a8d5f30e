// Package app wires the services shared by the API server and the terminal UI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrJamesThe3rd/kasir/internal/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/catalog/csvload"
	catalogStore "github.com/MrJamesThe3rd/kasir/internal/catalog/store"
	"github.com/MrJamesThe3rd/kasir/internal/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/config"
	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/database"
	"github.com/MrJamesThe3rd/kasir/internal/insights"
	"github.com/MrJamesThe3rd/kasir/internal/metrics"
	"github.com/MrJamesThe3rd/kasir/internal/notify"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
	saleMemstore "github.com/MrJamesThe3rd/kasir/internal/sale/memstore"
	saleStore "github.com/MrJamesThe3rd/kasir/internal/sale/store"
	"github.com/MrJamesThe3rd/kasir/internal/user"
	userMemstore "github.com/MrJamesThe3rd/kasir/internal/user/memstore"
	userStore "github.com/MrJamesThe3rd/kasir/internal/user/store"
)

type App struct {
	Config    *config.Config
	Registry  *prometheus.Registry
	Toasts    *notify.Queue
	Pricer    sale.Pricer
	Catalog   *catalog.Service
	Ledger    *sale.Ledger
	Users     *user.Service
	Checkout  *checkout.Session
	Dashboard *dashboard.Service
	Insights  *insights.Service

	db *sql.DB
}

// New builds every service from cfg. The memory driver starts from the demo
// ledger and user directory; the postgres driver uses whatever is stored.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	rate, err := cfg.TaxRate()
	if err != nil {
		return nil, err
	}

	products, err := loadProducts(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Registry: prometheus.NewRegistry(),
		Toasts:   notify.NewQueue(cfg.Notify.ToastDuration),
		Pricer:   sale.NewPricer(rate),
		Catalog:  catalog.NewService(catalogStore.New(products)),
	}

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		saleRepo sale.Repository
		userRepo user.Repository
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.New(cfg.ConnectionString(), cfg.Server.Timeout)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.db = db
		saleRepo = saleStore.New(db)
		userRepo = userStore.New(db)
	default:
		now := time.Now()
		saleRepo = saleMemstore.New(sale.SampleSales(now, a.Pricer))
		userRepo = userMemstore.New(user.SampleUsers(now))
	}

	a.Ledger = sale.NewLedger(saleRepo)
	a.Users = user.NewService(userRepo, a.Toasts)
	a.Dashboard = dashboard.NewService(a.Ledger, a.Users)
	a.Insights = insights.NewService(insights.Config{
		APIKey:   cfg.Insights.APIKey,
		Model:    cfg.Insights.Model,
		BaseURL:  cfg.Insights.BaseURL,
		Language: cfg.Insights.Language,
		Timeout:  cfg.Insights.Timeout,
	})

	a.Checkout, err = checkout.NewSession(ctx, a.Ledger, a.Toasts, a.Pricer,
		checkout.WithSuccessDelay(cfg.Checkout.SuccessDelay),
		checkout.WithCommitTimeout(cfg.Checkout.CommitTimeout),
		checkout.WithMetrics(metrics.NewCheckoutMetrics(a.Registry)),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	slog.Info("services ready",
		"storage", cfg.Storage.Driver,
		"products", len(products),
		"tax_rate", rate.String(),
		"insights", cfg.Insights.APIKey != "",
	)

	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}

func loadProducts(path string) ([]catalog.Product, error) {
	if path == "" {
		products, err := csvload.Sample()
		if err != nil {
			return nil, fmt.Errorf("loading sample catalog: %w", err)
		}

		return products, nil
	}

	products, err := csvload.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	return products, nil
}
