package handler

import (
	"net/http"

	"github.com/elitedog/backend/internal/content"
	"github.com/go-chi/chi/v5"
)

// PagesHandler serves the public marketing pages.
type PagesHandler struct {
	catalog *content.Catalog
	render  *Renderer
}

func NewPagesHandler(catalog *content.Catalog, render *Renderer) *PagesHandler {
	return &PagesHandler{catalog: catalog, render: render}
}

type sessionsView struct {
	Sessions []content.TrainingSession
}

type sessionView struct {
	Session content.TrainingSession
}

// Home handles GET /.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, pageHome, sessionsView{Sessions: h.catalog.All()})
}

// Events handles GET /events.
func (h *PagesHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, pageEvents, sessionsView{Sessions: h.catalog.All()})
}

// Event handles GET /events/{slug}.
func (h *PagesHandler) Event(w http.ResponseWriter, r *http.Request) {
	s, ok := h.catalog.Find(chi.URLParam(r, "slug"))
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.render.Render(w, r, http.StatusOK, pageEvent, sessionView{Session: s})
}

// NotFound renders the 404 page.
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusNotFound, pageNotFound, nil)
}
