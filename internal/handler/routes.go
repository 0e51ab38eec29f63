package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/recipe-api/internal/service"
)

// Services bundles what the router needs to serve every route.
type Services struct {
	Auth        *service.AuthService
	Tags        *service.TagService
	Ingredients *service.IngredientService
	Recipes     *service.RecipeService
	AuthLimiter *service.RateLimiter
	DB          Pinger
}

// Options tunes router behaviour that comes from configuration.
type Options struct {
	CORSOrigins  []string
	CookieSecure bool
	// TrustProxy takes the client IP from X-Forwarded-For and X-Real-IP.
	// Without it the rate limiter keys on the TCP peer address.
	TrustProxy bool
}

// NewRouter sets up all HTTP routes and middleware.
func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.StripSlashes)
	r.Use(Metrics)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", HandleHealthz(svc.DB))
	r.Handle("/metrics", promhttp.Handler())

	auth := NewAuthHandler(svc.Auth, opts.CookieSecure)
	tags := NewTagHandler(svc.Tags)
	ingredients := NewIngredientHandler(svc.Ingredients)
	recipes := NewRecipeHandler(svc.Recipes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(RateLimit(svc.AuthLimiter))
				r.Post("/create", auth.HandleCreateUser)
				r.Post("/token", auth.HandleCreateToken)
			})
			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(svc.Auth))
				r.Get("/me", auth.HandleMe)
				r.Patch("/me", auth.HandleUpdateMe)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(svc.Auth))

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tags.HandleList)
				r.Post("/", tags.HandleCreate)
				r.Get("/{id}", tags.HandleGet)
				r.Patch("/{id}", tags.HandleUpdate)
				r.Put("/{id}", tags.HandleUpdate)
				r.Delete("/{id}", tags.HandleDelete)
			})

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", ingredients.HandleList)
				r.Post("/", ingredients.HandleCreate)
				r.Get("/{id}", ingredients.HandleGet)
				r.Patch("/{id}", ingredients.HandleUpdate)
				r.Put("/{id}", ingredients.HandleUpdate)
				r.Delete("/{id}", ingredients.HandleDelete)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", recipes.HandleList)
				r.Post("/", recipes.HandleCreate)
				r.Get("/{id}", recipes.HandleGet)
				r.Patch("/{id}", recipes.HandlePatch)
				r.Put("/{id}", recipes.HandlePut)
				r.Delete("/{id}", recipes.HandleDelete)
			})
		})
	})

	return r
}
