package service

import (
	"context"
	"sync"
	"time"

	"github.com/elitedog/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockSubmissionRepository: in-memory stub for testing
// ---------------------------------------------------------------------------

type mockSubmissionRepository struct {
	mu         sync.Mutex
	rows       []*model.Submission
	clock      func() time.Time
	insertFunc func(ctx context.Context, s *model.Submission) error
	listErr    error
}

func newMockSubmissionRepository() *mockSubmissionRepository {
	return &mockSubmissionRepository{clock: time.Now}
}

func (m *mockSubmissionRepository) Insert(ctx context.Context, s *model.Submission) error {
	if m.insertFunc != nil {
		if err := m.insertFunc(ctx, s); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = m.clock().UTC()
	cp := *s
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *mockSubmissionRepository) ListAll(ctx context.Context) ([]*model.Submission, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Submission, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0; i-- {
		cp := *m.rows[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockSubmissionRepository) Ping(ctx context.Context) error { return nil }

func (m *mockSubmissionRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
