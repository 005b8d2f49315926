// ============================================================================
// MAIN.GO - APPLICATION ENTRY POINT
// ============================================================================
// Startup flow:
//   config → logger → identifier generator → link store → handler → server
//
// Everything the link store holds lives in memory and is gone on exit.
// ============================================================================

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shortlink/internal/config"
	httpHandler "shortlink/internal/handler/http"
	"shortlink/internal/repository"
	"shortlink/internal/service"
	"shortlink/internal/shortid"
	"shortlink/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ========================================================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================================================
	// Defaults, then the optional CONFIG_FILE, then environment variables
	// ========================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// ========================================================================
	// STEP 2: INITIALIZE STRUCTURED LOGGER
	// ========================================================================
	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting link shortener",
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// ========================================================================
	// STEP 3: DEPENDENCY INJECTION - BUILD THE DEPENDENCY GRAPH
	// ========================================================================
	// Generator + Repository → LinkStore → Handler
	// ========================================================================
	generator, err := shortid.NewRandom(cfg.Links.IdentifierLength)
	if err != nil {
		appLogger.Error("Invalid identifier settings", "error", err)
		os.Exit(1)
	}

	linkStore := service.NewLinkStore(
		repository.NewMemoryRepository(),
		generator,
		service.WithMaxAttempts(cfg.Links.MaxCreateAttempts),
		service.WithLogger(appLogger.WithFields(map[string]any{"component": "link_store"}).Logger),
	)

	handler := httpHandler.NewHandler(linkStore, appLogger, cfg.Server.BaseURL)

	// ========================================================================
	// STEP 4: SET UP HTTP ROUTES AND MIDDLEWARE
	// ========================================================================
	// EXECUTION ORDER (outside-in):
	// Request → Recovery → RequestID → Logging → CORS → Metrics → Handler
	// RequestID sits outside Logging so the log line carries the ID
	// ========================================================================
	var metricsHandler http.Handler
	middlewares := []httpHandler.Middleware{
		httpHandler.RecoveryMiddleware(appLogger),
		httpHandler.RequestIDMiddleware,
		httpHandler.LoggingMiddleware(appLogger),
		httpHandler.CORSMiddleware,
	}
	if cfg.App.EnableMetrics {
		metricsHandler = promhttp.Handler()
		middlewares = append(middlewares, httpHandler.MetricsMiddleware)
	}

	finalHandler := httpHandler.Chain(middlewares...)(handler.Routes(metricsHandler))

	// ========================================================================
	// STEP 5: CREATE AND START HTTP SERVER
	// ========================================================================
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ========================================================================
	// STEP 6: GRACEFUL SHUTDOWN
	// ========================================================================
	// Stop accepting new requests, then give in-flight ones
	// cfg.Server.ShutdownTimeout to finish
	// ========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", "signal", sig.String())
	case err := <-serverErr:
		appLogger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		return
	}

	appLogger.Info("Server exited gracefully")
}
