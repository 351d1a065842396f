package handler

import (
	"net/http"

	"github.com/damon-houk/cotacao/internal/application/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/metrics"
	"github.com/damon-houk/cotacao/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires every route behind the request ID, logging and metrics middleware.
// Paths without a trailing slash redirect to the slashed form.
func NewRouter(quotes *service.QuoteService, m *metrics.Metrics, log logger.Logger) *mux.Router {
	log = logger.OrDefault(log)

	router := mux.NewRouter().StrictSlash(true)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	if m != nil {
		router.Use(middleware.MetricsMiddleware(m))
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	NewIndexHandler(quotes, log).RegisterRoutes(router)
	NewQuoteHandler(quotes, log).RegisterRoutes(router)

	return router
}
