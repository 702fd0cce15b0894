package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/staticWagomU/slack-remind-generator/internal/handlers"
	"github.com/staticWagomU/slack-remind-generator/internal/middleware"
	"github.com/staticWagomU/slack-remind-generator/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

// routerDeps is everything the HTTP surface is assembled from
type routerDeps struct {
	logger         *zap.Logger
	allowedOrigins []string
	enableHSTS     bool
	tracing        bool

	health   *handlers.HealthChecker
	openAPI  *handlers.OpenAPIHandler
	time     *handlers.TimeHandler
	commands *handlers.CommandHandler
	ai       *handlers.AIHandler

	// rateLimit guards the routes that call the LLM
	rateLimit func(http.Handler) http.Handler
}

// newRouter wires middleware and routes. Middleware registered first is
// the outermost wrapper. CORS sits in front of the router so preflight
// requests for any path are answered without a matching route.
func newRouter(d routerDeps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	if d.tracing {
		r.Use(otelmux.Middleware(telemetry.ServerServiceName))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders(d.enableHSTS))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(d.logger))
	r.Use(middleware.Audit(d.logger))
	r.Use(middleware.Logging(d.logger))

	d.health.RegisterRoutes(r)
	d.openAPI.RegisterRoutes(r)

	api := r.PathPrefix("/api/v1").Subrouter()
	d.time.RegisterRoutes(api.PathPrefix("/time").Subrouter())
	d.commands.RegisterRoutes(api.PathPrefix("/commands").Subrouter())

	aiRouter := api.PathPrefix("/ai").Subrouter()
	d.ai.RegisterKeyRoutes(aiRouter)
	conversions := aiRouter.PathPrefix("").Subrouter()
	if d.rateLimit != nil {
		conversions.Use(d.rateLimit)
	}
	d.ai.RegisterConversionRoutes(conversions)

	return middleware.CORS(d.allowedOrigins, d.logger)(r)
}
