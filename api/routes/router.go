package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mateovidal/ordersync-backend/api/controllers"
	reconcilecontrollers "github.com/mateovidal/ordersync-backend/api/controllers/reconcile"
	"github.com/mateovidal/ordersync-backend/api/middleware"
	reconcilesvc "github.com/mateovidal/ordersync-backend/internal/reconcile"
	"github.com/mateovidal/ordersync-backend/pkg/config"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the HTTP surface: health probes, metrics, and the
// reconciliation endpoint.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP pinger,
	redisP pinger,
	registry *prometheus.Registry,
	reconcileService reconcilesvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/{orderId}/reconcile", reconcilecontrollers.Reconcile(reconcileService, logg))
	})

	return r
}
