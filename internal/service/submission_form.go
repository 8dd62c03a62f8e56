package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/model"
	"github.com/elitedog/backend/internal/validation"
	"golang.org/x/sync/singleflight"
)

// SubmissionForm runs the contact-form workflow: validate, then hand the
// normalized values to the sink.
//
// Concurrent submits of identical content by the same user share one in-flight
// create, so a double-clicked submit writes a single row. Different content
// from the same user is never merged.
type SubmissionForm struct {
	sink     SubmissionSink
	inflight singleflight.Group
}

// NewSubmissionForm creates a SubmissionForm writing to sink.
func NewSubmissionForm(sink SubmissionSink) *SubmissionForm {
	return &SubmissionForm{sink: sink}
}

// Submit validates c and creates a submission. It returns validation.Errors
// without touching the sink when any field is rejected, and the sink's
// *apperr.PersistenceError when the store fails.
func (f *SubmissionForm) Submit(ctx context.Context, userID string, c validation.Candidate) (*model.Submission, error) {
	accepted, err := validation.Check(c)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return f.sink.Create(ctx, accepted.Name, accepted.Email, accepted.Message)
	}

	// The shared create must outlive any single caller's cancellation; the
	// sink's store timeout still bounds it.
	createCtx := context.WithoutCancel(ctx)
	v, err, shared := f.inflight.Do(inflightKey(userID, accepted), func() (any, error) {
		return f.sink.Create(createCtx, accepted.Name, accepted.Email, accepted.Message)
	})
	if shared {
		logging.FromContext(ctx).Debug("joined in-flight submission", slog.String("user_id", userID))
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.Submission), nil
}

// inflightKey identifies a submit by who sent it and what it says.
func inflightKey(userID string, c validation.Candidate) string {
	return strings.Join([]string{userID, c.Name, c.Email, c.Message}, "\x00")
}
