package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-user-directory/docs"
	"github.com/FACorreiaa/go-user-directory/internal/api/auth"
	"github.com/FACorreiaa/go-user-directory/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.HandlerImpl
	UserHandler            user.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter initializes and configures the application routes.
// Server-wide middleware (logger, requestID, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", cfg.UserHandler.ListActive)
				r.Post("/", cfg.UserHandler.CreateUser)
				r.Post("/me", cfg.UserHandler.GetOwnUser)
				r.Get("/older-than/{age}", cfg.UserHandler.ListOlderThan)

				r.Route("/{login}", func(r chi.Router) {
					r.Get("/", cfg.UserHandler.GetUser)
					r.Delete("/", cfg.UserHandler.Revoke)
					r.Delete("/hard", cfg.UserHandler.HardDelete)
					r.Post("/restore", cfg.UserHandler.Restore)

					r.Put("/name", cfg.UserHandler.UpdateName)
					r.Put("/gender", cfg.UserHandler.UpdateGender)
					r.Put("/birthday", cfg.UserHandler.UpdateBirthday)
					r.Put("/password", cfg.UserHandler.UpdatePassword)
					r.Put("/login", cfg.UserHandler.UpdateLogin)
				})
			})
		})
	})

	return r
}
