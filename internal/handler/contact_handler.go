package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/model"
	"github.com/elitedog/backend/internal/validation"
	"github.com/elitedog/backend/pkg/auth"
)

const contactPath = "/contact"

// ContactForm is the submit side of the contact workflow (service.SubmissionForm).
type ContactForm interface {
	Submit(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error)
}

// ContactHandler serves the contact form page and the JSON submit endpoint.
// Both run behind the access guard; the user id is only read from context.
type ContactHandler struct {
	form   ContactForm
	render *Renderer
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(form ContactForm, render *Renderer) *ContactHandler {
	return &ContactHandler{form: form, render: render}
}

type contactView struct {
	Values validation.Candidate
	Errors map[string]string
	Sent   bool
	Failed bool
}

// Show handles GET /contact.
func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	view := contactView{Errors: map[string]string{}}
	if popFlash(w, r, contactPath) == flashSent {
		view.Sent = true
	}
	h.render.Render(w, r, http.StatusOK, pageContact, view)
}

// Submit handles POST /contact.
// Success redirects back to an empty form; any failure re-renders with the
// user's values intact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	c := validation.Candidate{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	_, err := h.form.Submit(r.Context(), userID, c)
	if err == nil {
		setFlash(w, contactPath, flashSent)
		http.Redirect(w, r, contactPath, http.StatusSeeOther)
		return
	}

	view := contactView{Values: c, Errors: map[string]string{}}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		view.Errors = verrs.Map()
		h.render.Render(w, r, http.StatusUnprocessableEntity, pageContact, view)
		return
	}

	logSubmitFailure(r, err)
	view.Failed = true
	h.render.Render(w, r, http.StatusInternalServerError, pageContact, view)
}

type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SubmitJSON handles POST /api/submissions.
func (h *ContactHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	var c validation.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	sub, err := h.form.Submit(r.Context(), userID, c)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
				Error:  "validation_failed",
				Fields: verrs.Map(),
			})
			return
		}
		logSubmitFailure(r, err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func logSubmitFailure(r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	if apperr.IsPersistence(err) {
		logger.Error("submission not saved", "error", err)
		return
	}
	logger.Error("submission failed", "error", err)
}
