package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/damon-houk/cotacao/internal/application/service"
	"github.com/damon-houk/cotacao/internal/config"
	domainsvc "github.com/damon-houk/cotacao/internal/domain/service"
	"github.com/damon-houk/cotacao/internal/infrastructure/api"
	"github.com/damon-houk/cotacao/internal/infrastructure/db"
	"github.com/damon-houk/cotacao/internal/infrastructure/handler"
	"github.com/damon-houk/cotacao/internal/infrastructure/logger"
	"github.com/damon-houk/cotacao/internal/infrastructure/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.Log.Level)).
		WithField("app", "cotacao")
	logger.SetDefaultLogger(log)

	log.Info("Starting Cotação exchange rate service", map[string]interface{}{
		"port":           cfg.HTTPServer.Port,
		"storage_driver": cfg.Storage.Driver,
		"provider":       cfg.Provider.BaseURL,
		"timezone":       cfg.App.Timezone,
	})

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone", map[string]interface{}{"error": err.Error()})
	}

	store, err := db.OpenQuoteStore(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open quote store", map[string]interface{}{
			"driver": cfg.Storage.Driver,
			"error":  err.Error(),
		})
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing quote store", map[string]interface{}{"error": err.Error()})
		}
	}()

	m := metrics.NewMetrics()

	client := api.NewVatComplyClient(cfg.Provider.BaseURL, &http.Client{Timeout: cfg.Provider.Timeout}, log).
		WithObserver(m)

	quotes := service.NewQuoteService([]domainsvc.RateSource{
		service.NewLiveRateSource(client, store, m, log),
		service.NewStoredRateSource(store, m, log),
	}, log, service.WithLocation(location))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(quotes, m, log),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			log.Error("Server failed", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Server stopped", nil)
}
