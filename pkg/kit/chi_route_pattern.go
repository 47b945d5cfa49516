package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

// ChiRoutePatternOrPath returns the matched chi pattern, e.g.
// /api/cart/{id}. Unrouted requests share one label.
func ChiRoutePatternOrPath(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if rp := rctx.RoutePattern(); rp != "" {
		return rp
	}
	return unmatchedRoute
}
