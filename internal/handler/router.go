package handler

import (
	"log/slog"
	"net/http"

	"github.com/elitedog/backend/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes bundles everything NewRouter mounts.
type Routes struct {
	Health      *Handler
	Pages       *PagesHandler
	Contact     *ContactHandler
	Listing     *ListingHandler
	AdminUsers  *AdminUserHandler
	Guard       *auth.Guard
	AdminUserID string
	Logger      *slog.Logger
}

// NewRouter wires HTTP routes.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(rt.Logger))
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)

	r.NotFound(rt.Pages.NotFound)

	r.Get("/", rt.Pages.Home)
	r.Get("/events", rt.Pages.Events)
	r.Get("/events/{slug}", rt.Pages.Event)
	r.Handle("/static/*", StaticHandler())

	r.Get("/api/health", rt.Health.Health)

	// Pages behind sign-in
	r.Group(func(r chi.Router) {
		r.Use(rt.Guard.RequirePage)
		r.Get("/contact", rt.Contact.Show)
		r.Post("/contact", rt.Contact.Submit)
		r.Get("/contacts", rt.Listing.Page)
	})

	r.Group(func(r chi.Router) {
		r.Use(rt.Guard.RequireAPI)
		r.Post("/api/submissions", rt.Contact.SubmitJSON)
		r.Get("/api/submissions", rt.Listing.List)
	})

	r.With(rt.Guard.Optional, auth.MarkAdmin(rt.AdminUserID)).Get("/api/users", rt.AdminUsers.List)

	return r
}
