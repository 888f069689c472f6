package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/runner"
)

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool                 `json:"success"`
	Data    []types.ReviewRecord `json:"data"`
	Error   string               `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger  *logrus.Logger
	runner  *runner.Runner
	timeout time.Duration
}

// NewServer creates a new API server using the settings file for defaults
func NewServer(settings config.Settings, logger *logrus.Logger) *Server {
	ext := extractor.NewReviewExtractor(settings.ScraperConfig(), logger, settings.DomainResolver())
	return &Server{
		logger:  logger,
		runner:  runner.NewRunner(ext, settings, config.Overrides{}, logger),
		timeout: 10 * time.Minute,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reviews", s.handleReviews)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// handleReviews collects the reviews for the job in the request body
func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var spec config.JobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := s.runner.Resolve(spec); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	records, results := s.runner.Run(ctx, []config.JobSpec{spec})
	for _, res := range results {
		s.logger.Infof("API request for %s: %s (%d records)", res.ASIN, res.Status(), res.Records)
	}
	if records == nil {
		records = []types.ReviewRecord{}
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: records})
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	s.writeJSON(w, statusCode, APIResponse{Success: false, Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, response APIResponse) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logrus.Fatalf("Failed to load environment: %v", err)
	}
	logger := config.NewLogger(env.LogLevel, false)

	settings, found, err := config.LoadSettings("config/settings.json")
	if err != nil {
		logger.Fatalf("Failed to read settings: %v", err)
	}
	if !found {
		logger.Warn("Settings file not found, using defaults.")
	}

	server := NewServer(settings, logger)

	logger.Infof("Starting API server on port %s", env.APIPort)
	logger.Info("Available endpoints:")
	logger.Info("  POST /reviews - Collect reviews for one job")
	logger.Info("  GET  /health  - Health check")

	srv := &http.Server{
		Addr:              ":" + env.APIPort,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
}
