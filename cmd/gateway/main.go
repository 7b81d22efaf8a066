package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/acasalaka/apapmedika-gateway/internal/apiclient"
	"github.com/acasalaka/apapmedika-gateway/internal/cache"
	"github.com/acasalaka/apapmedika-gateway/internal/config"
	"github.com/acasalaka/apapmedika-gateway/internal/handlers"
	"github.com/acasalaka/apapmedika-gateway/internal/middleware"
	"github.com/acasalaka/apapmedika-gateway/internal/session"
	"github.com/acasalaka/apapmedika-gateway/internal/store"
	"github.com/acasalaka/apapmedika-gateway/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting apapmedika gateway")

	// Initialize identity cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis identity cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory identity cache initialized")
	}

	// Outbound client and identity resolver
	client := apiclient.New(cfg.Client.Timeout)
	defer client.Close()

	resolver := session.NewResolver(client, cfg.Backends.User, cacheImpl, cfg.Session.IdentityTTL)

	// Per-session store registry
	sessions := store.NewRegistry(store.Deps{
		Client:   client,
		Resolver: resolver,
		Notifier: store.NewLogNotifier(logger.Get()),
		Endpoints: store.Endpoints{
			Appointment: cfg.Backends.Appointment,
			Reservation: cfg.Backends.Reservation,
			Billing:     cfg.Backends.Billing,
		},
	}, cfg.Session.IdleTTL)
	defer sessions.Close()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	appointmentHandler := handlers.NewAppointmentHandler(sessions)
	billHandler := handlers.NewBillHandler(sessions)
	reservationHandler := handlers.NewReservationHandler(sessions)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Domain endpoints (bearer token required, the route-guard equivalent)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", appointmentHandler.List)
			r.Post("/", appointmentHandler.Create)
			r.Put("/status", appointmentHandler.UpdateStatus)
			r.Put("/treatments", appointmentHandler.UpdateTreatments)
			r.Get("/{id}", appointmentHandler.Detail)
			r.Delete("/{id}", appointmentHandler.Delete)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", billHandler.List)
			r.Get("/{id}", billHandler.Detail)
			r.Put("/{id}/pay", billHandler.Pay)
		})

		r.Route("/policies", func(r chi.Router) {
			r.Get("/", billHandler.ListPolicies)
			r.Get("/{id}", billHandler.PolicyDetail)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", reservationHandler.List)
			r.Post("/", reservationHandler.Create)
			r.Get("/{id}", reservationHandler.Detail)
			r.Put("/{id}", reservationHandler.Update)
			r.Delete("/{id}", reservationHandler.Delete)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", reservationHandler.ListRooms)
			r.Get("/{id}", reservationHandler.RoomDetail)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
