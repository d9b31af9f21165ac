package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New builds the ServeMux from the controllers. Nil controllers are skipped
// so partial deployments and tests can wire only what they need.
func New(
	authMiddleware func(http.Handler) http.Handler,
	controllers ...RouteRegistrar,
) *http.ServeMux {
	mux := http.NewServeMux()

	for _, c := range controllers {
		if c != nil {
			c.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}
