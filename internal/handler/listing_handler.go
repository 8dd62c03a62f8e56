package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/model"
)

// CreatedLayout is how submission timestamps appear on the listing page.
const CreatedLayout = "Jan 2, 2006 at 3:04 PM"

// SubmissionLister reads all submissions newest first (service.SubmissionListing).
type SubmissionLister interface {
	ListAll(ctx context.Context) ([]*model.Submission, error)
}

// ListingHandler serves the protected submissions page and its JSON twin.
type ListingHandler struct {
	listing SubmissionLister
	render  *Renderer
	loc     *time.Location
}

// NewListingHandler creates a ListingHandler. Dates are shown in loc, or UTC when nil.
func NewListingHandler(listing SubmissionLister, render *Renderer, loc *time.Location) *ListingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ListingHandler{listing: listing, render: render, loc: loc}
}

type submissionView struct {
	Name       string
	Email      string
	Lines      []string
	Created    string
	CreatedISO string
}

type listingView struct {
	Submissions []submissionView
}

// Page handles GET /contacts. A store failure is logged and shown as the
// empty state; the page itself never fails.
func (h *ListingHandler) Page(w http.ResponseWriter, r *http.Request) {
	subs, err := h.listing.ListAll(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("list submissions", "error", err)
		subs = nil
	}

	view := listingView{Submissions: make([]submissionView, 0, len(subs))}
	for _, s := range subs {
		created := s.CreatedAt.In(h.loc)
		view.Submissions = append(view.Submissions, submissionView{
			Name:       s.Name,
			Email:      s.Email,
			Lines:      splitLines(s.Message),
			Created:    created.Format(CreatedLayout),
			CreatedISO: created.Format(time.RFC3339),
		})
	}
	h.render.Render(w, r, http.StatusOK, pageContacts, view)
}

type listResponse struct {
	Submissions []*model.Submission `json:"submissions"`
}

// List handles GET /api/submissions.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.listing.ListAll(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("list submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.Submission{}
	}
	writeJSON(w, http.StatusOK, listResponse{Submissions: subs})
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
