package app

import (
	"context"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shashiranjanraj/catalog/config"
	appctx "github.com/shashiranjanraj/catalog/pkg/ctx"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/middleware"
	"github.com/shashiranjanraj/catalog/pkg/reqid"
	"github.com/shashiranjanraj/catalog/pkg/response"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

// Router builds the full route table: global middleware, the
// infrastructure endpoints and every registered RouteFunc.
func (a *Application) Router() *router.Router {
	r := router.New()

	proxies, err := appctx.ParseProxies(config.TrustedProxies())
	if err != nil {
		logger.L.Warn("ignoring invalid TRUSTED_PROXIES entries", "error", err)
	}
	appctx.SetTrustedProxies(proxies)

	// Global middleware, outermost first:
	//  1. metrics    total latency including everything below
	//  2. request id before anything logs
	//  3. recovery   panics become 500s tagged with the request id
	//  4. logger     request-scoped logger in ctx
	//  5. CORS
	//  6. rate limit per client IP, Redis when available. The IP comes
	//     from forwarding headers only behind TRUSTED_PROXIES.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if limit := config.RateLimit(); limit > 0 {
		r.Use(middleware.RateLimit(middleware.NewLimiter(a.Cache, limit, time.Minute)))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", a.health)
	r.Mount("/swagger/*", "swagger", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	for _, fn := range a.routeFns {
		fn(r, a)
	}
	return r
}

// Handler is the http.Handler served by `catalog serve`.
func (a *Application) Handler() http.Handler {
	return a.Router().Handler()
}

// Ping reports whether the database answers; it backs /health and the
// gRPC health service.
func (a *Application) Ping(ctx context.Context) error {
	if a.DB == nil {
		return errNotBooted
	}
	return database.Ping(ctx, a.DB)
}

func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "ok", "cache": "disabled"}
	code := http.StatusOK

	if err := a.Ping(ctx); err != nil {
		status["database"] = "down"
		code = http.StatusServiceUnavailable
	}
	if a.Cache.Available() {
		status["cache"] = "ok"
		if err := a.Cache.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
	}

	response.JSON(w, code, map[string]interface{}{"status": http.StatusText(code), "checks": status})
}
