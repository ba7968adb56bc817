// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - Which routes sit behind the session guard and which are public
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (tests create a full server without running main)
// - Reusable (multiple entry points could use the same wiring)
// - Clean (main.go stays minimal — load config, start the server)
//
// DEPENDENCY INJECTION FLOW:
// main.go creates: config + logger + (optional) model → passed to New()
// New() creates: sqlite.DB → services → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired in one
// place rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/fitness-tracker/internal/auth"
	"github.com/sakif/fitness-tracker/internal/handler"
	"github.com/sakif/fitness-tracker/internal/middleware"
	"github.com/sakif/fitness-tracker/internal/observability"
	"github.com/sakif/fitness-tracker/internal/predictor"
	sqliteRepo "github.com/sakif/fitness-tracker/internal/repository/sqlite"
	"github.com/sakif/fitness-tracker/internal/service"
)

// Config holds server configuration. A struct (instead of individual
// parameters) means new options don't ripple through function signatures.
type Config struct {
	Addr   string // listen address, e.g. ":8080"
	DBPath string // path to the SQLite database file
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown — skipping that could leave the WAL
// un-checkpointed.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the entire dependency chain:
//
//  1. Open the database (sqlite.New runs migrations)
//  2. Build the services on top of the repository interfaces
//  3. Build the handlers on top of the services
//  4. Wire handlers to routes, public and protected
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete sqlite.DB), handlers get services (not
// repositories). model may be nil — the predict endpoint then answers 503
// while everything else keeps working.
func New(cfg Config, logger *slog.Logger, model predictor.Predictor) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(model)

	return s, nil
}

// Handler exposes the router so tests can drive the full stack through
// httptest without opening a network listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database connection. Start() does this itself on
// shutdown; tests that never call Start() use Close directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /signup          → create account + session        (public)
//	POST   /login           → credentials → session           (public)
//	GET    /health          → liveness probe                  (public)
//	GET    /metrics         → Prometheus scrape               (public)
//	POST   /logout          → revoke current session          (protected)
//	POST   /predict         → calorie estimate                (protected)
//	GET    /workouts        → list own workouts, newest first (protected)
//	POST   /workouts        → save a workout                  (protected)
//	DELETE /workouts/{id}   → delete own workout              (protected)
//	GET    /stats           → aggregate over own workouts     (protected)
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — tags each request for log correlation
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
// 5. Metrics — counts and times each request
// The session guard is NOT global — it wraps only the protected group.
func (s *Server) setupRoutes(model predictor.Predictor) {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(observability.Middleware)

	// DEPENDENCY CHAIN:
	//   s.db → Users()/Sessions()/Workouts() implement the repository
	//   interfaces → services receive the interfaces → handlers receive
	//   the services. Handlers never touch SQL; services never touch HTTP.
	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db.Users(), s.db.Sessions(), passwords, s.logger)
	workoutService := service.NewWorkoutService(s.db.Workouts(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	workoutHandler := handler.NewWorkoutHandler(workoutService, s.logger)
	predictHandler := handler.NewPredictHandler(model, s.logger)

	// === Public routes ===
	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/health", handler.HandleHealth)
	s.router.Handle("/metrics", observability.Handler())

	// === Protected routes ===
	// AuthService doubles as the session resolver: the guard hands it the
	// bearer token and gets back the user id that every handler below
	// reads from the request context.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))

		r.Post("/logout", authHandler.HandleLogout)
		r.Post("/predict", predictHandler.HandlePredict)
		r.Get("/workouts", workoutHandler.HandleList)
		r.Post("/workouts", workoutHandler.HandleCreate)
		r.Delete("/workouts/{id}", workoutHandler.HandleDelete)
		r.Get("/stats", workoutHandler.HandleStats)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully:
//
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests to finish
//  3. Close the database (checkpoints the WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.Addr),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
