package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/kasir/internal/http/catalog"
	"github.com/MrJamesThe3rd/kasir/internal/http/checkout"
	"github.com/MrJamesThe3rd/kasir/internal/http/dashboard"
	"github.com/MrJamesThe3rd/kasir/internal/http/notify"
	"github.com/MrJamesThe3rd/kasir/internal/http/sale"
	"github.com/MrJamesThe3rd/kasir/internal/http/user"
)

type Handlers struct {
	Products      *catalog.Handler
	Checkout      *checkout.Handler
	Sales         *sale.Handler
	Users         *user.Handler
	Dashboard     *dashboard.Handler
	Notifications *notify.Handler
}

// New builds the API router. A nil gatherer leaves /metrics unmounted.
func New(h Handlers, corsOrigins []string, gatherer prometheus.Gatherer) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", h.Products.Routes)

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Checkout.Routes(r)
		})

		r.Route("/sales", h.Sales.Routes)

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Users.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/notifications", h.Notifications.Routes)
	})

	return router
}
