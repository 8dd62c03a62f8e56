package service

import (
	"context"

	"github.com/elitedog/backend/internal/model"
)

// SubmissionSink is the only write path for submissions.
type SubmissionSink interface {
	// Create persists a new submission from already validated values. The ID
	// and CreatedAt are assigned here and by the store, never by the caller.
	// Failures are returned as *apperr.PersistenceError.
	Create(ctx context.Context, name, email, message string) (*model.Submission, error)
}

// SubmissionListing reads every persisted submission, newest first.
type SubmissionListing interface {
	// ListAll has no side effects. Failures are returned as *apperr.PersistenceError.
	ListAll(ctx context.Context) ([]*model.Submission, error)
}
