package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/funfair/waitpredictor/handlers"
	"github.com/funfair/waitpredictor/internal/config"
	"github.com/funfair/waitpredictor/internal/mlmodel"
	"github.com/funfair/waitpredictor/internal/predictor"
	"github.com/funfair/waitpredictor/models"
	"github.com/funfair/waitpredictor/repository"
)

func main() {
	// Load base .env first, then .env.local (which overrides for local development)
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the model eagerly so a missing artifact shows up in the startup log.
	// The server still starts without it and answers with a notice.
	loader := mlmodel.NewLoader(cfg.ModelPath)
	if _, err := loader.Load(); err != nil {
		log.Printf("Starting without a model; predictions will show a notice until %s exists and the server restarts", cfg.ModelPath)
	}

	var (
		recorder   predictor.PredictionRecorder
		dbPinger   handlers.Pinger
		logHandler *handlers.PredictionLogHandler
	)
	if cfg.PredictionLogEnabled() {
		predictionLog, err := repository.OpenPredictionLog(ctx, cfg.DatabaseURL, cfg.SQLiteDatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize prediction log: %v", err)
		}
		defer predictionLog.Close()
		recorder = predictionLog
		dbPinger = predictionLog
		logHandler = handlers.NewPredictionLogHandler(predictionLog)
		go runCleanup(ctx, predictionLog, cfg.PredictionLogRetention)
	} else {
		log.Println("Prediction log disabled (set DATABASE_URL or SQLITE_DATABASE to enable)")
	}

	service := predictor.NewService(loader, models.DefaultCatalog(), recorder)

	router := handlers.NewRouter(handlers.RouterConfig{
		Predict:        handlers.NewPredictHandler(service),
		Health:         handlers.NewHealthHandler(loader, dbPinger),
		PredictionLog:  logHandler,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("API server starting on :%s", cfg.Port)
	log.Println("Dashboard endpoints:")
	log.Println("  GET  /api/rides")
	log.Println("  GET  /api/options")
	log.Println("  POST /api/predict")
	if logHandler != nil {
		log.Println("  GET  /api/predictions/recent")
	}
	log.Println("Health:")
	log.Println("  GET  /health")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: server shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
	log.Println("Server stopped")
}

// runCleanup trims the prediction log hourly until ctx is cancelled
func runCleanup(ctx context.Context, predictionLog repository.PredictionLog, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		if _, err := predictionLog.Cleanup(ctx, retention); err != nil {
			log.Printf("Warning: prediction log cleanup failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
