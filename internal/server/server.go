package server

import (
	"fmt"
	"net/http"
	"time"

	"bestbuy/internal/config"
	"bestbuy/internal/middleware"
	"bestbuy/internal/service"
	"bestbuy/internal/store"
	"bestbuy/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	logger *zap.Logger
}

// NewRouter wires the middleware stack and store routes around st
func NewRouter(cfg *config.Config, logger *zap.Logger, st *store.Store) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.DefaultStack()...)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recover(logger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	inventory := service.NewInventoryService(st, logger)
	transport.NewStoreHandler(inventory, logger).RegisterRoutes(router)

	return router
}

func NewServer(cfg *config.Config, logger *zap.Logger, st *store.Store) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, st),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Close flushes the logger; the store holds no external resources
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")
	s.logger.Sync()
	return nil
}
