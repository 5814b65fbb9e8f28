// Command seeder inserts the curated default catalog content: the body part
// taxonomy plus starter http refs, exercises, workouts, mental activities
// and nutrition items. It is idempotent and safe to re-run; already seeded
// rows are skipped.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	pgbodypart "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/bodypart"
	pgexercise "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/exercise"
	pghttpref "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/httpref"
	pgmental "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/mental"
	pgnutrition "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/nutrition"
	pgworkout "github.com/wellforge/lifestyle-backend/internal/adapter/postgres/workout"
	"github.com/wellforge/lifestyle-backend/internal/app"
	"github.com/wellforge/lifestyle-backend/internal/app/seeder"
	"github.com/wellforge/lifestyle-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	s := seeder.New(
		logger,
		pgbodypart.New(pool),
		pghttpref.New(pool),
		pgexercise.New(pool),
		pgworkout.New(pool),
		pgmental.New(pool),
		pgnutrition.New(pool),
		postgres.NewTxManager(pool),
	)

	if err := s.Run(ctx); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
