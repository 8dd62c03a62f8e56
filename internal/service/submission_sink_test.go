package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionSink_Create_AssignsIDAndStoreTimestamp(t *testing.T) {
	repo := newMockSubmissionRepository()
	storeTime := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	repo.clock = func() time.Time { return storeTime }
	sink := NewSubmissionSink(repo, time.Second)

	sub, err := sink.Create(context.Background(), "Al", "al@example.com", "Please call me back")
	require.NoError(t, err)

	_, perr := uuid.Parse(sub.ID)
	assert.NoError(t, perr, "id must be a UUID, got %q", sub.ID)
	assert.Equal(t, storeTime, sub.CreatedAt)
	assert.Equal(t, "Al", sub.Name)
	assert.Equal(t, 1, repo.count())
}

func TestSubmissionSink_Create_UniqueIDs(t *testing.T) {
	repo := newMockSubmissionRepository()
	sink := NewSubmissionSink(repo, 0)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		sub, err := sink.Create(context.Background(), "Al", "al@example.com", "Please call me back")
		require.NoError(t, err)
		require.False(t, seen[sub.ID], "duplicate id %s", sub.ID)
		seen[sub.ID] = true
	}
}

func TestSubmissionSink_Create_StoreFailureIsPersistenceError(t *testing.T) {
	repo := newMockSubmissionRepository()
	repo.insertFunc = func(ctx context.Context, s *model.Submission) error {
		return errors.New("connection refused")
	}
	sink := NewSubmissionSink(repo, time.Second)

	sub, err := sink.Create(context.Background(), "Al", "al@example.com", "Please call me back")
	assert.Nil(t, sub)

	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)
	assert.Equal(t, 0, repo.count(), "no partial row")
}

func TestSubmissionSink_Create_TimeoutIsPersistenceError(t *testing.T) {
	repo := newMockSubmissionRepository()
	repo.insertFunc = func(ctx context.Context, s *model.Submission) error {
		<-ctx.Done()
		return ctx.Err()
	}
	sink := NewSubmissionSink(repo, 10*time.Millisecond)

	_, err := sink.Create(context.Background(), "Al", "al@example.com", "Please call me back")
	assert.True(t, apperr.IsPersistence(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmissionSink_Create_IDFailureIsPersistenceError(t *testing.T) {
	repo := newMockSubmissionRepository()
	sink := &submissionSinkImpl{
		repo:  repo,
		newID: func() (uuid.UUID, error) { return uuid.Nil, errors.New("entropy exhausted") },
	}

	_, err := sink.Create(context.Background(), "Al", "al@example.com", "Please call me back")
	assert.True(t, apperr.IsPersistence(err))
	assert.Equal(t, 0, repo.count())
}
