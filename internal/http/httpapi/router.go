package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donorhub/internal/domain"
	"donorhub/internal/http/handlers"
	"donorhub/internal/middleware"
)

// Options carries the cross-cutting dependencies of the router.
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Limiter        middleware.Limiter
	CountryLookup  middleware.CountryLookup
	DefaultLocale  string
	Logger         zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/programs", app.ProgramsList)
		r.Get("/stats/impact", app.ImpactStats)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthJWT(opts.JWTSecret))
			if opts.Limiter != nil {
				r.Use(middleware.RateLimit(opts.Limiter, opts.Logger))
			}
			r.Post("/donations", app.DonationsCreate)
			r.Post("/volunteers", app.VolunteersCreate)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret))
			r.Get("/me", app.Me)
			r.Get("/me/donations", app.DonationsMine)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret), middleware.RequireRole(string(domain.UserRoleAdmin)))

			r.Get("/donations", app.AdminDonationsList)
			r.Patch("/donations/{id}/status", app.AdminDonationStatus)
			r.Get("/volunteers", app.AdminVolunteersList)
			r.Patch("/volunteers/{id}/status", app.AdminVolunteerStatus)

			r.Get("/analytics/donations", app.AdminDonationAnalytics)
			r.Get("/analytics/volunteers", app.AdminVolunteerAnalytics)

			r.Route("/reports", func(r chi.Router) {
				r.Post("/", app.ReportPost)
				r.Get("/bundle", app.ReportBundle)
				r.Get("/{type}", app.ReportGet)
				r.Post("/{type}/archive", app.ReportArchive)
			})
		})
	})

	return r
}
