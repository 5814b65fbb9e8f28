package rest

import (
	"log/slog"
	"net/http"

	"github.com/wellforge/lifestyle-backend/internal/config"
	"github.com/wellforge/lifestyle-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Users     *UserHandler
	HttpRefs  *HttpRefHandler
	Exercises *ExerciseHandler
	Workouts  *WorkoutHandler
	Mentals   *MentalHandler
	Nutrition *NutritionHandler
}

// RouterDeps carries the cross-cutting collaborators of the router.
type RouterDeps struct {
	Logger        *slog.Logger
	TokenVerifier middleware.TokenValidator
	RateLimiter   *middleware.RateLimiter
	CORS          config.CORSConfig
	RateLimit     int
}

const apiPrefix = "/api/v1"

// NewRouter builds the full route table. All /api/v1 routes share one
// middleware chain; authentication is optional at this layer, services
// decide which operations demand it.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	api := http.NewServeMux()

	// Auth.
	api.HandleFunc("POST "+apiPrefix+"/users/auth/signup", h.Auth.Signup)
	api.HandleFunc("POST "+apiPrefix+"/users/auth/login", h.Auth.Login)

	// Profile.
	api.HandleFunc("GET "+apiPrefix+"/users", h.Users.GetProfile)
	api.HandleFunc("PATCH "+apiPrefix+"/users/{userId}", h.Users.UpdateProfile)
	api.HandleFunc("DELETE "+apiPrefix+"/users/{userId}", h.Users.DeleteAccount)

	// Http refs.
	api.HandleFunc("POST "+apiPrefix+"/workouts/httpRefs", h.HttpRefs.Create)
	api.HandleFunc("GET "+apiPrefix+"/workouts/httpRefs", h.HttpRefs.List)
	api.HandleFunc("GET "+apiPrefix+"/workouts/httpRefs/default", h.HttpRefs.ListDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/httpRefs/default/{httpRefId}", h.HttpRefs.GetDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/httpRefs/{httpRefId}", h.HttpRefs.GetCustom)
	api.HandleFunc("PATCH "+apiPrefix+"/workouts/httpRefs/{httpRefId}", h.HttpRefs.Update)
	api.HandleFunc("DELETE "+apiPrefix+"/workouts/httpRefs/{httpRefId}", h.HttpRefs.Delete)

	// Body part taxonomy.
	api.HandleFunc("GET "+apiPrefix+"/workouts/bodyParts", h.Exercises.ListBodyParts)

	// Exercises.
	api.HandleFunc("POST "+apiPrefix+"/workouts/exercises", h.Exercises.Create)
	api.HandleFunc("GET "+apiPrefix+"/workouts/exercises", h.Exercises.List)
	api.HandleFunc("GET "+apiPrefix+"/workouts/exercises/default", h.Exercises.ListDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/exercises/default/{exerciseId}", h.Exercises.GetDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/exercises/{exerciseId}", h.Exercises.GetCustom)
	api.HandleFunc("PATCH "+apiPrefix+"/workouts/exercises/{exerciseId}", h.Exercises.Update)
	api.HandleFunc("DELETE "+apiPrefix+"/workouts/exercises/{exerciseId}", h.Exercises.Delete)

	// Workouts.
	api.HandleFunc("POST "+apiPrefix+"/workouts", h.Workouts.Create)
	api.HandleFunc("GET "+apiPrefix+"/workouts", h.Workouts.List)
	api.HandleFunc("GET "+apiPrefix+"/workouts/default", h.Workouts.ListDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/default/{workoutId}", h.Workouts.GetDefault)
	api.HandleFunc("GET "+apiPrefix+"/workouts/{workoutId}", h.Workouts.GetCustom)
	api.HandleFunc("PATCH "+apiPrefix+"/workouts/{workoutId}", h.Workouts.Update)
	api.HandleFunc("DELETE "+apiPrefix+"/workouts/{workoutId}", h.Workouts.Delete)

	// Mental activities.
	api.HandleFunc("POST "+apiPrefix+"/mentals", h.Mentals.Create)
	api.HandleFunc("GET "+apiPrefix+"/mentals", h.Mentals.List)
	api.HandleFunc("GET "+apiPrefix+"/mentals/default", h.Mentals.ListDefault)
	api.HandleFunc("GET "+apiPrefix+"/mentals/types", h.Mentals.ListTypes)
	api.HandleFunc("GET "+apiPrefix+"/mentals/default/{mentalId}", h.Mentals.GetDefault)
	api.HandleFunc("GET "+apiPrefix+"/mentals/{mentalId}", h.Mentals.GetCustom)
	api.HandleFunc("PATCH "+apiPrefix+"/mentals/{mentalId}", h.Mentals.Update)
	api.HandleFunc("DELETE "+apiPrefix+"/mentals/{mentalId}", h.Mentals.Delete)

	// Nutrition.
	api.HandleFunc("POST "+apiPrefix+"/nutritions", h.Nutrition.Create)
	api.HandleFunc("GET "+apiPrefix+"/nutritions", h.Nutrition.List)
	api.HandleFunc("GET "+apiPrefix+"/nutritions/default", h.Nutrition.ListDefault)
	api.HandleFunc("GET "+apiPrefix+"/nutritions/types", h.Nutrition.ListTypes)
	api.HandleFunc("GET "+apiPrefix+"/nutritions/default/{nutritionId}", h.Nutrition.GetDefault)
	api.HandleFunc("GET "+apiPrefix+"/nutritions/{nutritionId}", h.Nutrition.GetCustom)
	api.HandleFunc("PATCH "+apiPrefix+"/nutritions/{nutritionId}", h.Nutrition.Update)
	api.HandleFunc("DELETE "+apiPrefix+"/nutritions/{nutritionId}", h.Nutrition.Delete)

	mws := []middleware.Middleware{
		middleware.Middleware(middleware.RequestID),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
	}
	if deps.RateLimiter != nil {
		mws = append(mws, deps.RateLimiter.Limit(deps.RateLimit))
	}
	mws = append(mws, middleware.Auth(deps.TokenVerifier))
	chain := middleware.Chain(mws...)

	root := http.NewServeMux()
	root.HandleFunc("GET /live", h.Health.Live)
	root.HandleFunc("GET /ready", h.Health.Ready)
	root.HandleFunc("GET /health", h.Health.Health)
	root.Handle(apiPrefix+"/", chain(api))

	return root
}
