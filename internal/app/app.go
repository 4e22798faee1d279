package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"institute-api/internal/ai"
	"institute-api/internal/config"
	"institute-api/internal/database"
	"institute-api/internal/handler"
	"institute-api/internal/middleware"
	"institute-api/internal/repository"
	"institute-api/internal/router"
	"institute-api/internal/service"
)

const tokenCleanupInterval = time.Hour

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	if err := db.SeedAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	trashRepo := repository.NewTrashRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	slog.Info("database ready")

	aiClient := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if aiClient.Enabled() {
		slog.Info("ai features enabled", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY is not set, ai features degrade to heuristics")
	}
	classifier := ai.NewClassifier(aiClient, slog.Default())
	evaluator := ai.NewEvaluator(aiClient)

	activityService := service.NewActivityService(activityRepo)
	trashService := service.NewTrashService(trashRepo, activityService, studentRepo, employeeRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, activityService, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	employeeService := service.NewEmployeeService(employeeRepo, trashService, activityService)
	studentService := service.NewStudentService(studentRepo, trashService, activityService, evaluator)
	transactionService := service.NewTransactionService(transactionRepo, classifier, activityService)
	settingsService := service.NewSettingsService(settingsRepo, userRepo, activityService)
	notificationService := service.NewNotificationService(notificationRepo)
	dashboardService := service.NewDashboardService(studentRepo, employeeRepo, activityService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Employee:     handler.NewEmployeeHandler(employeeService),
		Student:      handler.NewStudentHandler(studentService),
		Transaction:  handler.NewTransactionHandler(transactionService),
		Settings:     handler.NewSettingsHandler(settingsService),
		Notification: handler.NewNotificationHandler(notificationService),
		Trash:        handler.NewTrashHandler(trashService),
		Activity:     handler.NewActivityHandler(activityService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	})

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go runTokenCleanup(cleanupCtx, tokenRepo)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				cleanupCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}

func runTokenCleanup(ctx context.Context, tokens *repository.TokenRepository) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.CleanExpired(ctx)
			if err != nil {
				slog.Warn("refresh token cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("cleaned expired refresh tokens", "removed", removed)
			}
		}
	}
}
