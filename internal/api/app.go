package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"PetShop/internal/cart"
	"PetShop/internal/catalog"
	"PetShop/pkg/kit"
)

const (
	rootMessage  = "PetShop API is running"
	readyTimeout = 1 * time.Second
)

type HTTPDeps struct {
	Log       *zap.Logger
	Namespace string
	Registry  *prometheus.Registry

	AllowedOrigins []string
	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Catalog catalog.Store
	Cart    cart.Store
}

// NewHandler wires the catalog and the cart behind one router. The cart
// store is owned by the caller.
func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	cartMetrics := setupMetrics(r, httpDeps)

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log}
	cartSrv := &cart.Server{
		Cart: cart.NewService(deps.Cart, deps.Catalog, httpDeps.Log.Named("cart"), cartMetrics),
		Log:  httpDeps.Log,
	}

	r.Get("/", root)
	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Mount("/api/cart", cartSrv.Routes())
	r.Mount("/api", catalogSrv.Routes())

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(kit.RequestID)
	r.Use(kit.Logging(deps.Log))
	r.Use(kit.Recoverer(deps.Log))
	r.Use(kit.CORS(deps.AllowedOrigins))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) *cart.Metrics {
	if deps.Registry == nil {
		return nil
	}

	metrics := kit.NewMetrics(deps.Registry, deps.Namespace)
	r.Use(metrics.Middleware(kit.ChiRoutePatternOrPath))
	cartMetrics := cart.NewMetrics(deps.Registry, deps.Namespace)

	if !deps.MetricsEnabled {
		return cartMetrics
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	return cartMetrics
}

func root(w http.ResponseWriter, _ *http.Request) {
	kit.WriteText(w, http.StatusOK, rootMessage)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		if err := deps.Cart.Ping(ctx); err != nil {
			log.Warn("readyz failed: cart", zap.Error(err))
			kit.WriteError(w, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
