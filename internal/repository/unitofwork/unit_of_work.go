package unitofwork

import (
	"context"

	"keepnotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	LabelRepository() contract.LabelRepository
	PreferenceRepository() contract.PreferenceRepository
}
