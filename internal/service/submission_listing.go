package service

import (
	"context"
	"time"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/internal/model"
	"github.com/elitedog/backend/internal/repository"
)

type submissionListingImpl struct {
	repo    repository.SubmissionRepository
	timeout time.Duration
}

// NewSubmissionListing creates a SubmissionListing backed by repo.
func NewSubmissionListing(repo repository.SubmissionRepository, timeout time.Duration) SubmissionListing {
	return &submissionListingImpl{repo: repo, timeout: timeout}
}

func (s *submissionListingImpl) ListAll(ctx context.Context) ([]*model.Submission, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "list", Err: err}
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	return subs, nil
}
