package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	apiContext "hookdesk/internal/api/context"
	"hookdesk/internal/api/handlers"
	"hookdesk/internal/api/middleware"
	"hookdesk/internal/pkg/errors"
)

type Dependencies struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	FormHandler         *handlers.FormHandler
	ViewHandler         *handlers.ViewHandler
	ToastHandler        *handlers.ToastHandler
	StreamHandler       *handlers.StreamHandler
	HealthHandler       *handlers.HealthHandler
	MetricsHandler      *handlers.MetricsHandler
	Readiness           middleware.Readiness
	RequestsPerMinute   int
}

func NewRouter(deps *Dependencies) http.Handler {
	router := httprouter.New()

	ready := middleware.RequireReady(deps.Readiness)

	// Subscriptions
	router.GET("/api/v1/subscriptions", chain(deps.SubscriptionHandler.List, ready))
	router.POST("/api/v1/subscriptions", wrap(deps.SubscriptionHandler.Create))
	router.GET("/api/v1/subscriptions/:subscription_id", chain(deps.SubscriptionHandler.Get, ready))
	router.PUT("/api/v1/subscriptions/:subscription_id", wrap(deps.SubscriptionHandler.Update))
	router.DELETE("/api/v1/subscriptions/:subscription_id", wrap(deps.SubscriptionHandler.Delete))
	router.POST("/api/v1/subscriptions/:subscription_id/key/copy", wrap(deps.SubscriptionHandler.CopyKey))
	router.GET("/api/v1/subscriptions/:subscription_id/key/qr", wrap(deps.SubscriptionHandler.KeyQRCode))

	// Form helpers
	router.POST("/api/v1/forms/validate", wrap(deps.FormHandler.Validate))
	router.POST("/api/v1/forms/event-types/toggle", wrap(deps.FormHandler.ToggleEventType))

	// Navigation
	router.GET("/api/v1/views", chain(deps.ViewHandler.Resolve, ready))

	// Toasts
	router.GET("/api/v1/toasts", wrap(deps.ToastHandler.List))
	router.DELETE("/api/v1/toasts/:toast_id", wrap(deps.ToastHandler.Dismiss))

	// Push stream
	router.GET("/api/v1/stream", wrap(deps.StreamHandler.Stream))

	// Operations
	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found", nil)
	})

	var handler http.Handler = router
	handler = middleware.RateLimit(deps.RequestsPerMinute)(handler)
	handler = middleware.Logging(handler)
	return handler
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
