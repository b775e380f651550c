package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/stock-manager/docs"
	"github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	rl "github.com/rogerio-castellano/stock-manager/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type options struct {
	authLimiter *rl.Visitors
	logRequests bool
}

type Option func(*options)

// WithAuthRateLimit throttles the unauthenticated auth endpoints per client IP.
func WithAuthRateLimit(v *rl.Visitors) Option {
	return func(o *options) { o.authLimiter = v }
}

func WithRequestLogging() Option {
	return func(o *options) { o.logRequests = true }
}

func NewRouter(opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if o.logRequests {
		r.Use(mw.RequestLogger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if o.authLimiter != nil {
					r.Use(mw.RateLimit(o.authLimiter))
				}
				r.Post("/register", handlers.RegisterHandler)
				r.Post("/login", handlers.LoginHandler)
				r.Post("/refresh", handlers.RefreshHandler)
			})
			r.Group(func(r chi.Router) {
				r.Use(mw.AuthMiddleware)
				r.Get("/me", handlers.GetProfileHandler)
				r.Put("/me", handlers.UpdateProfileHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware)

			r.Get("/stats", handlers.GetStatsHandler)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireManagerForWrites)

				r.Route("/products", func(r chi.Router) {
					r.Get("/", handlers.GetProductsHandler)
					r.Post("/", handlers.CreateProductHandler)
					r.Get("/{id}", handlers.GetProductByIDHandler)
					r.Put("/{id}", handlers.UpdateProductHandler)
					r.Delete("/{id}", handlers.DeleteProductHandler)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", handlers.GetCategoriesHandler)
					r.Post("/", handlers.CreateCategoryHandler)
					r.Get("/{id}", handlers.GetCategoryByIDHandler)
					r.Put("/{id}", handlers.UpdateCategoryHandler)
					r.Delete("/{id}", handlers.DeleteCategoryHandler)
				})
			})
		})
	})

	return r
}
