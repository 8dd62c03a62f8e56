package repository

import (
	"context"

	"github.com/elitedog/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// SubmissionRepository persists contact-form submissions.
// Implementations only insert whole rows and read the whole table.
type SubmissionRepository interface {
	DB

	// Insert writes s as a new row. s.ID must already be set; s.CreatedAt is
	// overwritten with the timestamp assigned by the store.
	Insert(ctx context.Context, s *model.Submission) error

	// ListAll returns every row, newest first. Rows with equal created_at are
	// returned newest insertion first.
	ListAll(ctx context.Context) ([]*model.Submission, error)
}
