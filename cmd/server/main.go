// File: cmd/server/main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JingYiJun/ClassicIndex/api/handlers"
	"github.com/JingYiJun/ClassicIndex/internal/config"
	"github.com/JingYiJun/ClassicIndex/internal/log"
	"github.com/JingYiJun/ClassicIndex/internal/services"
)

func main() {
	logger := log.ForService("server")

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadServer()
	if err != nil {
		logger.Errorf("loading configuration: %v", err)
		os.Exit(1)
	}
	log.SetGlobalDebug(cfg.Debug)

	// Initialize services
	backend := services.NewBackendService(cfg.BackendURL, cfg.BackendTimeout)
	searchHandler := handlers.NewSearchHandler(backend)

	// Set up router - release mode unless GIN_MODE says otherwise
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.Writer()
	r := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      true,
	}, searchHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine so it doesn't block shutdown
	go func() {
		logger.Infof("listening on :%s, forwarding to %s (timeout %s)", cfg.Port, cfg.BackendURL, cfg.BackendTimeout)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	// Give in-flight searches the full backend timeout to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.BackendTimeout+5*time.Second)
	defer shutdownCancel()

	logger.Infof("shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown error: %v", err)
		os.Exit(1)
	}

	logger.Infof("server gracefully stopped")
}
