package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterConfig wires handlers into the HTTP API
type RouterConfig struct {
	Predict        *PredictHandler
	Health         *HealthHandler
	PredictionLog  *PredictionLogHandler // nil disables /api/predictions routes
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter builds the API router
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", cfg.Health.GetHealth)
	r.Get("/healthz", cfg.Health.GetHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rides", cfg.Predict.GetRides)
		r.Get("/options", cfg.Predict.GetOptions)
		r.Post("/predict", cfg.Predict.Predict)

		if cfg.PredictionLog != nil {
			r.Get("/predictions/recent", cfg.PredictionLog.GetRecent)
		}
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
