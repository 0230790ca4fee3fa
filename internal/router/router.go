package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"ticketboard/internal/config"
	"ticketboard/internal/handlers"
	"ticketboard/internal/middleware"
	"ticketboard/internal/repository"
	"ticketboard/internal/service"
)

// Deps are the storage backends the API serves from.
type Deps struct {
	Tickets repository.TicketRepository
	Users   repository.UserRepository
	DB      repository.Pinger
}

func New(log zerolog.Logger, deps Deps, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg.SessionSecret))

	authSvc := service.NewAuthService(deps.Users, cfg.SessionSecret, cfg.TokenTTL)
	routes := func(r chi.Router) {
		// Health
		r.Get("/healthz", handlers.Health())
		r.Get("/health", handlers.Health())
		r.Get("/health/db", handlers.HealthDB(deps.DB))

		ah := handlers.NewAuthHTTP(authSvc)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", ah.Login())
			r.Post("/register", ah.Register())
			r.Get("/verify", ah.Verify())
			r.Post("/logout", ah.Logout())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			th := handlers.NewTicketHTTP(deps.Tickets)
			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", th.List())
				r.Post("/", th.Create())
				r.Get("/search", th.Search())
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", th.Get())
					r.Put("/", th.Update())
					r.Delete("/", th.Delete())
				})
			})

			uh := handlers.NewUserHTTP(deps.Users, authSvc)
			r.Get("/users/me", uh.Me())
			r.Put("/users/me", uh.UpdateMe())

			rh := handlers.NewReportsHTTP(deps.Tickets)
			r.Get("/reports/summary", rh.Summary())
		})
	}

	// Older clients call /tickets directly; the reverse proxy forwards /api/tickets.
	routes(r)
	r.Route("/api", routes)

	return r
}
