package implementation

import (
	"context"
	"errors"
	"time"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/mapper"
	"keepnotes-be/internal/model"
	"keepnotes-be/internal/repository/contract"
	"keepnotes-be/internal/repository/scope"
	"keepnotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(mapper.NewLabelMapper()),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	// Labels are managed through ReplaceLabels, never upserted here.
	if err := r.db.WithContext(ctx).Omit("Labels").Create(m).Error; err != nil {
		return err
	}
	labels := note.Labels
	*note = *r.mapper.ToEntity(m)
	note.Labels = labels
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	// Unscoped so trashed rows can be rewritten as well (the vault seals
	// every note, trash included). The model carries its own deleted_at.
	if err := r.db.WithContext(ctx).Unscoped().Omit("Labels").Save(m).Error; err != nil {
		return err
	}
	labels := note.Labels
	*note = *r.mapper.ToEntity(m)
	note.Labels = labels
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(scope.WithTrashed).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *NoteRepositoryImpl) Purge(ctx context.Context, id uuid.UUID) error {
	// Join rows do not cascade on a many2many, so they go first.
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM note_labels WHERE note_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Scopes(scope.WithTrashed).
		Delete(&model.Note{}, id).Error
}

func (r *NoteRepositoryImpl) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM note_labels WHERE note_id IN (SELECT id FROM notes WHERE deleted_at IS NOT NULL AND deleted_at < ?)", cutoff).Error; err != nil {
		return 0, err
	}
	query := r.applySpecifications(r.db.WithContext(ctx), specification.TrashedBefore{Cutoff: cutoff})
	result := query.Delete(&model.Note{})
	return result.RowsAffected, result.Error
}

func (r *NoteRepositoryImpl) ReplaceLabels(ctx context.Context, note *entity.Note, labels []*entity.Label) error {
	labelMapper := mapper.NewLabelMapper()
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Model(m).Association("Labels").Replace(labelMapper.ToModels(labels)); err != nil {
		return err
	}
	note.Labels = labels
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Labels"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	// Newest-first base order keeps ties deterministic for the stable
	// in-memory comparator sort downstream.
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Labels").Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
