package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bestbuy/internal/catalog"
	"bestbuy/internal/config"
	"bestbuy/internal/domain"
	"bestbuy/internal/logger"
	"bestbuy/internal/server"
	"bestbuy/internal/store"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight orders get 30 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func loadProducts(cfg *config.Config, log *zap.Logger) ([]domain.Product, error) {
	if cfg.Store.CatalogFile == "" {
		log.Info("Using built-in catalog")
		return catalog.Default(), nil
	}

	log.Info("Loading catalog", zap.String("file", cfg.Store.CatalogFile))
	return catalog.Load(cfg.Store.CatalogFile)
}

func main() {
	cfg := config.Load()

	base, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer base.Sync()

	log := logger.ForStore(base, cfg.Store.Name, cfg.Server.Env)

	products, err := loadProducts(cfg, log)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	st := store.New(products...)
	log.Info("Store opened",
		zap.Int("products", len(products)),
		zap.Int("total_quantity", st.TotalQuantity()),
	)

	srv := server.NewServer(cfg, log, st)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
