package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/model"
	"github.com/elitedog/backend/internal/repository"
	"github.com/google/uuid"
)

// submissionSinkImpl is the production implementation of SubmissionSink.
type submissionSinkImpl struct {
	repo    repository.SubmissionRepository
	timeout time.Duration
	newID   func() (uuid.UUID, error)
}

// NewSubmissionSink creates a SubmissionSink backed by repo. Each store call is
// bounded by timeout; zero means no extra deadline.
func NewSubmissionSink(repo repository.SubmissionRepository, timeout time.Duration) SubmissionSink {
	return &submissionSinkImpl{repo: repo, timeout: timeout, newID: uuid.NewV7}
}

func (s *submissionSinkImpl) Create(ctx context.Context, name, email, message string) (*model.Submission, error) {
	id, err := s.newID()
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "create", Err: err}
	}

	sub := &model.Submission{
		ID:      id.String(),
		Name:    name,
		Email:   email,
		Message: message,
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.repo.Insert(ctx, sub); err != nil {
		logging.FromContext(ctx).Error("submission insert failed", "error", err)
		return nil, &apperr.PersistenceError{Op: "create", Err: err}
	}

	logging.FromContext(ctx).Info("submission created",
		slog.String("submission_id", sub.ID),
		slog.Time("created_at", sub.CreatedAt),
	)
	return sub, nil
}
