package contract

import (
	"context"
	"time"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error  // Soft delete -> trash
	Restore(ctx context.Context, id uuid.UUID) error // Clear deleted_at
	Purge(ctx context.Context, id uuid.UUID) error   // Hard delete
	PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ReplaceLabels(ctx context.Context, note *entity.Note, labels []*entity.Label) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
