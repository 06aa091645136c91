package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logging"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository/kvstore"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// @title Workout Tracker API
// @version 1.0
// @description Workout generation, daily completion tracking and rewards.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}
	logCloser := logging.Setup(cfg.Log)
	defer logCloser.Close()

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret (JWT_SECRET) must be set")
	}
	loc, err := cfg.Tracker.Location()
	if err != nil {
		log.Fatal(err)
	}

	// --- Metrics ---
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("workout", "server", promRegistry)

	// --- Storage ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, fallback, err := storage.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("could not open storage: %s", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("closing storage: %s", err)
		}
	}()
	metricsManager.SetStoreFallback(fallback)

	// --- Repositories & Services ---
	workoutService := service.NewWorkoutService(kvstore.NewWorkoutRepository(store), nil)
	progressService := service.NewProgressService(kvstore.NewProgressRepository(store), loc, nil)
	rewardsService := service.NewRewardsService(kvstore.NewPointsRepository(store), cfg.Tracker.PointsPerWorkout)
	services := api.Services{
		Auth:       service.NewAuthService(kvstore.NewUserRepository(store, cfg.Storage.Namespace), cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Storage.Namespace),
		Workout:    workoutService,
		Progress:   progressService,
		Completion: service.NewCompletionService(workoutService, progressService, rewardsService),
		Rewards:    rewardsService,
	}

	// --- Router ---
	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(), api.RequestMetrics(metricsManager))
	api.SetupRoutes(router, services, metricsManager, promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Info("server exiting")
}
