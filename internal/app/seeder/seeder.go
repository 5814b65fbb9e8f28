// Package seeder populates the catalog with the curated default content:
// the body part taxonomy and a starter set of default http refs, exercises,
// workouts, mental activities and nutrition items. Default rows are shared,
// visible to everyone and immutable through the API, so they can only enter
// the database here (taxonomy types are seeded by migrations).
//
// The seeder is idempotent: rows whose name already exists in the default
// scope are skipped, so re-running it is safe.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type bodyPartRepo interface {
	Insert(ctx context.Context, bp domain.BodyPart) error
	List(ctx context.Context) ([]domain.BodyPart, error)
}

type httpRefRepo interface {
	NameTaken(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, ref *domain.HttpRef) (*domain.HttpRef, error)
}

type exerciseRepo interface {
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error)
	SetBodyParts(ctx context.Context, exerciseID uuid.UUID, bodyPartIDs []uuid.UUID) error
	SetHttpRefs(ctx context.Context, exerciseID uuid.UUID, httpRefIDs []uuid.UUID) error
}

type workoutRepo interface {
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	SetExercises(ctx context.Context, workoutID uuid.UUID, exerciseIDs []uuid.UUID) error
}

type mentalRepo interface {
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, m *domain.MentalActivity) (*domain.MentalActivity, error)
	ListTypes(ctx context.Context) ([]domain.MentalType, error)
	SetHttpRefs(ctx context.Context, activityID uuid.UUID, httpRefIDs []uuid.UUID) error
}

type nutritionRepo interface {
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, n *domain.Nutrition) (*domain.Nutrition, error)
	ListTypes(ctx context.Context) ([]domain.NutritionType, error)
	SetHttpRefs(ctx context.Context, nutritionID uuid.UUID, httpRefIDs []uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Seeder inserts the default catalog content.
type Seeder struct {
	bodyParts  bodyPartRepo
	httpRefs   httpRefRepo
	exercises  exerciseRepo
	workouts   workoutRepo
	mentals    mentalRepo
	nutritions nutritionRepo
	tx         txManager
	log        *slog.Logger

	created int
	skipped int
}

// New creates a Seeder.
func New(
	log *slog.Logger,
	bodyParts bodyPartRepo,
	httpRefs httpRefRepo,
	exercises exerciseRepo,
	workouts workoutRepo,
	mentals mentalRepo,
	nutritions nutritionRepo,
	tx txManager,
) *Seeder {
	return &Seeder{
		bodyParts:  bodyParts,
		httpRefs:   httpRefs,
		exercises:  exercises,
		workouts:   workouts,
		mentals:    mentals,
		nutritions: nutritions,
		tx:         tx,
		log:        log.With("component", "seeder"),
	}
}

// Run seeds everything inside a single transaction. Partial default content
// would be worse than none, so any failure rolls the whole run back.
func (s *Seeder) Run(ctx context.Context) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		parts, err := s.seedBodyParts(ctx)
		if err != nil {
			return err
		}

		refs, err := s.seedHttpRefs(ctx)
		if err != nil {
			return err
		}

		exercises, err := s.seedExercises(ctx, parts, refs)
		if err != nil {
			return err
		}

		if err := s.seedWorkouts(ctx, exercises); err != nil {
			return err
		}

		if err := s.seedMentals(ctx, refs); err != nil {
			return err
		}

		return s.seedNutritions(ctx, refs)
	})
	if err != nil {
		return err
	}

	s.log.Info("seeding finished",
		slog.Int("created", s.created),
		slog.Int("skipped", s.skipped),
	)
	return nil
}

func (s *Seeder) seedBodyParts(ctx context.Context) (map[string]uuid.UUID, error) {
	for _, name := range defaultBodyParts {
		if err := s.bodyParts.Insert(ctx, domain.BodyPart{ID: seedID("bodypart", name), Name: name}); err != nil {
			return nil, err
		}
	}

	// Re-read so already-seeded rows keep their original ids.
	parts, err := s.bodyParts.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uuid.UUID, len(parts))
	for _, bp := range parts {
		byName[bp.Name] = bp.ID
	}
	return byName, nil
}

func (s *Seeder) seedHttpRefs(ctx context.Context) (map[string]uuid.UUID, error) {
	byName := make(map[string]uuid.UUID, len(defaultHttpRefs))

	for _, seed := range defaultHttpRefs {
		// Seed ids are derived from the name, so a partially seeded
		// database still resolves references to existing rows.
		id := seedID("httpref", seed.name)
		byName[seed.name] = id

		taken, err := s.httpRefs.NameTaken(ctx, seed.name, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			s.skipped++
			continue
		}

		now := time.Now()
		if _, err := s.httpRefs.Create(ctx, &domain.HttpRef{
			ID:          id,
			Name:        seed.name,
			Ref:         seed.ref,
			Description: optional(seed.description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return nil, err
		}
		s.created++
	}

	return byName, nil
}

func (s *Seeder) seedExercises(ctx context.Context, parts, refs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	byTitle := make(map[string]uuid.UUID, len(defaultExercises))

	for _, seed := range defaultExercises {
		id := seedID("exercise", seed.title)
		byTitle[seed.title] = id

		taken, err := s.exercises.TitleTaken(ctx, seed.title, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			s.skipped++
			continue
		}

		bodyPartIDs, err := lookupAll(parts, seed.bodyParts)
		if err != nil {
			return nil, fmt.Errorf("exercise %q: %w", seed.title, err)
		}
		httpRefIDs, err := lookupAll(refs, seed.httpRefs)
		if err != nil {
			return nil, fmt.Errorf("exercise %q: %w", seed.title, err)
		}

		now := time.Now()
		ex, err := s.exercises.Create(ctx, &domain.Exercise{
			ID:             id,
			Title:          seed.title,
			Description:    optional(seed.description),
			NeedsEquipment: seed.needsEquipment,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return nil, err
		}

		if err := s.exercises.SetBodyParts(ctx, ex.ID, bodyPartIDs); err != nil {
			return nil, err
		}
		if err := s.exercises.SetHttpRefs(ctx, ex.ID, httpRefIDs); err != nil {
			return nil, err
		}
		s.created++
	}

	return byTitle, nil
}

func (s *Seeder) seedWorkouts(ctx context.Context, exercises map[string]uuid.UUID) error {
	for _, seed := range defaultWorkouts {
		taken, err := s.workouts.TitleTaken(ctx, seed.title, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			s.skipped++
			continue
		}

		exerciseIDs, err := lookupAll(exercises, seed.exercises)
		if err != nil {
			return fmt.Errorf("workout %q: %w", seed.title, err)
		}

		now := time.Now()
		wo, err := s.workouts.Create(ctx, &domain.Workout{
			ID:          seedID("workout", seed.title),
			Title:       seed.title,
			Description: optional(seed.description),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		if err := s.workouts.SetExercises(ctx, wo.ID, exerciseIDs); err != nil {
			return err
		}
		s.created++
	}

	return nil
}

func (s *Seeder) seedMentals(ctx context.Context, refs map[string]uuid.UUID) error {
	types, err := s.mentals.ListTypes(ctx)
	if err != nil {
		return err
	}
	typeByName := make(map[string]uuid.UUID, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.ID
	}

	for _, seed := range defaultMentals {
		taken, err := s.mentals.TitleTaken(ctx, seed.title, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			s.skipped++
			continue
		}

		typeID, ok := typeByName[seed.mentalType]
		if !ok {
			return fmt.Errorf("mental %q: unknown type %q", seed.title, seed.mentalType)
		}
		httpRefIDs, err := lookupAll(refs, seed.httpRefs)
		if err != nil {
			return fmt.Errorf("mental %q: %w", seed.title, err)
		}

		now := time.Now()
		m, err := s.mentals.Create(ctx, &domain.MentalActivity{
			ID:           seedID("mental", seed.title),
			Title:        seed.title,
			Description:  optional(seed.description),
			MentalTypeID: typeID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		if err := s.mentals.SetHttpRefs(ctx, m.ID, httpRefIDs); err != nil {
			return err
		}
		s.created++
	}

	return nil
}

func (s *Seeder) seedNutritions(ctx context.Context, refs map[string]uuid.UUID) error {
	types, err := s.nutritions.ListTypes(ctx)
	if err != nil {
		return err
	}
	typeByName := make(map[string]uuid.UUID, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.ID
	}

	for _, seed := range defaultNutritions {
		taken, err := s.nutritions.TitleTaken(ctx, seed.title, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			s.skipped++
			continue
		}

		typeID, ok := typeByName[seed.nutritionType]
		if !ok {
			return fmt.Errorf("nutrition %q: unknown type %q", seed.title, seed.nutritionType)
		}
		httpRefIDs, err := lookupAll(refs, seed.httpRefs)
		if err != nil {
			return fmt.Errorf("nutrition %q: %w", seed.title, err)
		}

		now := time.Now()
		n, err := s.nutritions.Create(ctx, &domain.Nutrition{
			ID:              seedID("nutrition", seed.title),
			Title:           seed.title,
			Description:     optional(seed.description),
			NutritionTypeID: typeID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}
		if err := s.nutritions.SetHttpRefs(ctx, n.ID, httpRefIDs); err != nil {
			return err
		}
		s.created++
	}

	return nil
}

func lookupAll(byName map[string]uuid.UUID, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing seeded dependency %q", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// seedID derives a stable UUID from the kind and name of a seeded row.
func seedID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+name))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
