package contract

import (
	"context"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LabelRepository interface {
	Create(ctx context.Context, label *entity.Label) error
	Update(ctx context.Context, label *entity.Label) error
	Delete(ctx context.Context, id uuid.UUID) error // Hard delete, detaches from notes
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Label, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Label, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
