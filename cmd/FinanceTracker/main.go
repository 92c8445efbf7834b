package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/sebuszqo/FinanceTracker/internal/user"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Path not found")
}

type Server struct {
	router         *http.ServeMux
	authHandler    *auth.Handler
	userHandler    *user.Handler
	authService    auth.Service
	financeHandler interfaces.Handlers
	dbService      *database.DBService
}

func NewServer(authHandler *auth.Handler, authService auth.Service, userHandler *user.Handler, financeHandler interfaces.Handlers, dbService *database.DBService) *Server {
	return &Server{
		authHandler:    authHandler,
		authService:    authService,
		userHandler:    userHandler,
		financeHandler: financeHandler,
		dbService:      dbService,
		router:         http.NewServeMux(),
	}
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := s.dbService.Health(ctx)
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not ready",
			"database": health,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"database": health,
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	s.router.Handle("POST /api/auth/register", http.HandlerFunc(s.userHandler.HandleRegister))
	s.router.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	s.router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes
	s.router.Handle("GET /api/auth/me", protect(http.HandlerFunc(s.userHandler.HandleGetMe)))
	s.router.Handle("POST /api/auth/2fa/setup", protect(http.HandlerFunc(s.authHandler.HandleSetupTwoFactor)))
	s.router.Handle("POST /api/auth/2fa/enable", protect(http.HandlerFunc(s.authHandler.HandleEnableTwoFactor)))
	s.router.Handle("POST /api/auth/2fa/disable", protect(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	interfaces.RegisterRoutes(s.router, protect, s.financeHandler, respondError)

	s.router.Handle("/", http.HandlerFunc(notFoundHandler))
}

// buildServer wires repositories, services and handlers on top of an open database.
func buildServer(cfg *config.Config, dbService *database.DBService, logger *log.Logger) *Server {
	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, user.Options{
		BcryptCost:      cfg.BcryptCost,
		VerifyEmailHost: cfg.VerifyEmailHost,
	}, logger.WithComponent(log.ComponentUser))

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	authenticator := auth.Authenticator{}
	authService := auth.NewAuthService(auth.NewRepository(dbService.DB), userService, jwtManager, authenticator, logger.WithComponent(log.ComponentAuth))
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, jwtManager)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	incomeRepo := infrastructure.NewIncomeRepository(dbService.DB)
	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	goalRepo := infrastructure.NewGoalRepository(dbService.DB)

	financeHandler := interfaces.Handlers{
		Categories: interfaces.NewCategoryHandler(application.NewCategoryService(categoryRepo), respondJSON, respondError),
		Expenses:   interfaces.NewExpenseHandler(application.NewExpenseService(expenseRepo, categoryRepo), respondJSON, respondError),
		Income:     interfaces.NewIncomeHandler(application.NewIncomeService(incomeRepo, categoryRepo), respondJSON, respondError),
		Budgets: interfaces.NewBudgetHandler(
			application.NewBudgetService(budgetRepo, categoryRepo, expenseRepo, userService),
			respondJSON, respondError,
		),
		Goals: interfaces.NewGoalHandler(application.NewGoalService(goalRepo, logger.WithComponent(log.ComponentFinance)), respondJSON, respondError),
		Reports: interfaces.NewReportHandler(
			application.NewAnalyticsService(expenseRepo, incomeRepo, userService, logger.WithComponent(log.ComponentAnalytics)),
			application.NewReportService(expenseRepo, incomeRepo, logger.WithComponent(log.ComponentReports)),
			respondJSON, respondError,
		),
	}

	server := NewServer(authHandler, authService, userHandler, financeHandler, dbService)
	server.RegisterRoutes()
	return server
}

func main() {
	cfg, dotenvLoaded := config.Load()

	logger := log.New(log.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	if !dotenvLoaded {
		logger.Info().Msg("No .env file found, continuing with system environment variables")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Str(log.FieldOperation, log.OpStartup).Msg("Invalid configuration")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	storageLogger := logger.WithComponent(log.ComponentStorage)
	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DBDriver, cfg.DBConnectionString, storageLogger); err != nil {
			return fmt.Errorf("could not run migrations: %w", err)
		}
	}

	dbService, err := database.NewDBService(cfg, storageLogger)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer dbService.Close()

	server := buildServer(cfg, dbService, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", log.RequestIDHeader},
		ExposedHeaders:   []string{log.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           log.Middleware(logger)(corsHandler.Handler(server.router)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("Server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Str(log.FieldOperation, log.OpShutdown).Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info().Msg("Server stopped")
	return nil
}
