package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/config"
	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/workout"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type tokenValidatorStub struct {
	userID uuid.UUID
	err    error
}

func (s *tokenValidatorStub) ValidateAccessToken(string) (uuid.UUID, error) {
	return s.userID, s.err
}

type exerciseServiceStub struct {
	exerciseService
	bodyParts []domain.BodyPart
}

func (s *exerciseServiceStub) ListBodyParts(context.Context) ([]domain.BodyPart, error) {
	return s.bodyParts, nil
}

type workoutServiceStub struct {
	workoutService
	getByID func(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Workout, error)
	create  func(ctx context.Context, userID uuid.UUID, input workout.CreateInput) (*domain.Workout, error)
}

func (s *workoutServiceStub) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Workout, error) {
	return s.getByID(ctx, userID, id, requested)
}

func (s *workoutServiceStub) Create(ctx context.Context, userID uuid.UUID, input workout.CreateInput) (*domain.Workout, error) {
	return s.create(ctx, userID, input)
}

func newTestRouter(t *testing.T, exercises *exerciseServiceStub, workouts *workoutServiceStub, validator *tokenValidatorStub) http.Handler {
	t.Helper()

	logger := testLogger()
	h := Handlers{
		Health:    NewHealthHandler(&dbPingerMock{}, "test"),
		Exercises: NewExerciseHandler(exercises, logger),
		Workouts:  NewWorkoutHandler(workouts, logger),
	}
	return NewRouter(h, RouterDeps{
		Logger:        logger,
		TokenVerifier: validator,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	})
}

func TestRouter_BodyPartsWinsOverWorkoutID(t *testing.T) {
	t.Parallel()

	exercises := &exerciseServiceStub{bodyParts: []domain.BodyPart{{ID: uuid.New(), Name: "Arms"}}}
	workouts := &workoutServiceStub{
		getByID: func(context.Context, uuid.UUID, uuid.UUID, domain.Visibility) (*domain.Workout, error) {
			t.Fatal("the bodyParts segment must not route to the workout handler")
			return nil, nil
		},
	}
	router := newTestRouter(t, exercises, workouts, &tokenValidatorStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts/bodyParts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DefaultAndCustomWorkoutRoutes(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var requested []domain.Visibility
	workouts := &workoutServiceStub{
		getByID: func(_ context.Context, _ uuid.UUID, gotID uuid.UUID, vis domain.Visibility) (*domain.Workout, error) {
			if gotID != id {
				t.Errorf("expected id %s, got %s", id, gotID)
			}
			requested = append(requested, vis)
			return &domain.Workout{ID: id, Title: "Morning routine"}, nil
		},
	}
	router := newTestRouter(t, &exerciseServiceStub{}, workouts, &tokenValidatorStub{})

	for _, path := range []string{
		"/api/v1/workouts/default/" + id.String(),
		"/api/v1/workouts/" + id.String(),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("path %s: expected status 200, got %d", path, rec.Code)
		}
	}

	if len(requested) != 2 || requested[0] != domain.VisibilityDefault || requested[1] != domain.VisibilityCustom {
		t.Errorf("expected default then custom visibility, got %v", requested)
	}
}

func TestRouter_BearerTokenReachesService(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	workouts := &workoutServiceStub{
		create: func(ctx context.Context, gotUserID uuid.UUID, _ workout.CreateInput) (*domain.Workout, error) {
			if gotUserID != userID {
				t.Errorf("expected authenticated user id, got %s", gotUserID)
			}
			if ctxID, ok := ctxutil.UserIDFromCtx(ctx); !ok || ctxID != userID {
				t.Error("expected user id in request context")
			}
			return &domain.Workout{ID: uuid.New(), Title: "New"}, nil
		},
	}
	router := newTestRouter(t, &exerciseServiceStub{}, workouts, &tokenValidatorStub{userID: userID})

	body := strings.NewReader(`{"title":"New","exerciseIds":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", body)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_HealthBypassesAPIChain(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &exerciseServiceStub{}, &workoutServiceStub{}, &tokenValidatorStub{err: domain.ErrUnauthorized})

	// An invalid token must not block liveness probes.
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
