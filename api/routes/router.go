package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kegworks/taproom-backend/api/controllers"
	"github.com/kegworks/taproom-backend/api/middleware"
	"github.com/kegworks/taproom-backend/internal/bac"
	"github.com/kegworks/taproom-backend/internal/binge"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/internal/policy"
	"github.com/kegworks/taproom-backend/internal/pour"
	"github.com/kegworks/taproom-backend/internal/users"
	"github.com/kegworks/taproom-backend/pkg/config"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Processor  *pour.Processor
	DrinksRepo drinks.Repository

	Users    users.Service
	Kegs     kegs.Service
	Grants   grants.Service
	Policies policy.Service
	BAC      bac.Service
	Sessions binge.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.RedisPinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pours", func(r chi.Router) {
			r.Post("/", controllers.PourCreate(deps.Processor, deps.Logger))
		})

		r.Route("/drinks", func(r chi.Router) {
			r.Get("/{drinkID}", controllers.DrinkGet(deps.DrinksRepo, deps.Logger))
			r.Delete("/{drinkID}", controllers.DrinkVoid(deps.Processor, deps.Logger))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(deps.Users, deps.Logger))
			r.Get("/", controllers.UserList(deps.Users, deps.Logger))
			r.Get("/{userID}", controllers.UserGet(deps.Users, deps.Logger))
			r.Get("/{userID}/bac", controllers.UserBAC(deps.BAC, deps.Logger))
			r.Get("/{userID}/sessions", controllers.UserSessions(deps.Sessions, deps.Logger))
			r.Get("/{userID}/drinks", controllers.UserDrinks(deps.DrinksRepo, deps.Logger))
			r.Get("/{userID}/grants", controllers.UserGrants(deps.Grants, deps.Logger))
		})

		r.Route("/grants", func(r chi.Router) {
			r.Post("/", controllers.GrantCreate(deps.Grants, deps.Logger))
			r.Get("/{grantID}", controllers.GrantGet(deps.Grants, deps.Logger))
			r.Delete("/{grantID}", controllers.GrantDelete(deps.Grants, deps.Logger))
		})

		r.Route("/policies", func(r chi.Router) {
			r.Post("/", controllers.PolicyCreate(deps.Policies, deps.Logger))
			r.Get("/", controllers.PolicyList(deps.Policies, deps.Logger))
			r.Get("/{policyID}", controllers.PolicyGet(deps.Policies, deps.Logger))
		})

		r.Route("/kegs", func(r chi.Router) {
			r.Post("/", controllers.KegCreate(deps.Kegs, deps.Logger))
			r.Get("/", controllers.KegList(deps.Kegs, deps.Logger))
			r.Get("/{kegID}", controllers.KegGet(deps.Kegs, deps.DrinksRepo, deps.Logger))
			r.Put("/{kegID}/status", controllers.KegSetStatus(deps.Kegs, deps.Logger))
		})
	})

	return r
}
