package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	pgbodypart "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/bodypart"
	pgexercise "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/exercise"
	pghttpref "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/httpref"
	pgmental "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/mental"
	pgnutrition "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/nutrition"
	pguser "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/user"
	pgworkout "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/workout"
	"github.com/wellforge/lifestyle-backend/internal/auth"
	"github.com/wellforge/lifestyle-backend/internal/config"
	"github.com/wellforge/lifestyle-backend/internal/service/exercise"
	"github.com/wellforge/lifestyle-backend/internal/service/httpref"
	"github.com/wellforge/lifestyle-backend/internal/service/mental"
	"github.com/wellforge/lifestyle-backend/internal/service/nutrition"
	"github.com/wellforge/lifestyle-backend/internal/service/user"
	"github.com/wellforge/lifestyle-backend/internal/service/workout"
	"github.com/wellforge/lifestyle-backend/internal/transport/middleware"
	"github.com/wellforge/lifestyle-backend/internal/transport/rest"
)

// Run wires the application together and serves HTTP until the context is
// canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	httpRefRepo := pghttpref.New(pool)
	bodyPartRepo := pgbodypart.New(pool)
	exerciseRepo := pgexercise.New(pool)
	workoutRepo := pgworkout.New(pool)
	mentalRepo := pgmental.New(pool)
	nutritionRepo := pgnutrition.New(pool)
	userRepo := pguser.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	httpRefService := httpref.NewService(logger, httpRefRepo, userRepo, txm)
	exerciseService := exercise.NewService(logger, exerciseRepo, bodyPartRepo, httpRefRepo, userRepo, txm)
	workoutService := workout.NewService(logger, workoutRepo, exerciseRepo, userRepo, txm)
	mentalService := mental.NewService(logger, mentalRepo, httpRefRepo, userRepo, txm)
	nutritionService := nutrition.NewService(logger, nutritionRepo, httpRefRepo, userRepo, txm)
	userService := user.NewService(logger, userRepo, jwtManager, txm, cfg.Auth.PasswordHashCost)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Auth:      rest.NewAuthHandler(userService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		HttpRefs:  rest.NewHttpRefHandler(httpRefService, logger),
		Exercises: rest.NewExerciseHandler(exerciseService, logger),
		Workouts:  rest.NewWorkoutHandler(workoutService, logger),
		Mentals:   rest.NewMentalHandler(mentalService, logger),
		Nutrition: rest.NewNutritionHandler(nutritionService, logger),
	}

	router := rest.NewRouter(handlers, rest.RouterDeps{
		Logger:        logger,
		TokenVerifier: jwtManager,
		RateLimiter:   rateLimiter,
		RateLimit:     cfg.Server.RateLimitPerMin,
		CORS:          cfg.CORS,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
