package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kasir/internal/app"
	"github.com/MrJamesThe3rd/kasir/internal/config"
	kasirHttp "github.com/MrJamesThe3rd/kasir/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/kasir/internal/http/catalog"
	checkoutHandler "github.com/MrJamesThe3rd/kasir/internal/http/checkout"
	dashboardHandler "github.com/MrJamesThe3rd/kasir/internal/http/dashboard"
	notifyHandler "github.com/MrJamesThe3rd/kasir/internal/http/notify"
	saleHandler "github.com/MrJamesThe3rd/kasir/internal/http/sale"
	userHandler "github.com/MrJamesThe3rd/kasir/internal/http/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	router := kasirHttp.New(kasirHttp.Handlers{
		Products:      catalogHandler.NewHandler(a.Catalog),
		Checkout:      checkoutHandler.NewHandler(a.Checkout, a.Catalog),
		Sales:         saleHandler.NewHandler(a.Ledger),
		Users:         userHandler.NewHandler(a.Users),
		Dashboard:     dashboardHandler.NewHandler(a.Dashboard, a.Insights),
		Notifications: notifyHandler.NewHandler(a.Toasts),
	}, cfg.Server.CORSOrigins, a.Registry)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + cfg.Insights.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "port", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
