package implementation

import (
	"context"
	"errors"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/mapper"
	"keepnotes-be/internal/model"
	"keepnotes-be/internal/repository/contract"
	"keepnotes-be/internal/repository/scope"
	"keepnotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LabelMapper
}

func NewLabelRepository(db *gorm.DB) contract.LabelRepository {
	return &LabelRepositoryImpl{
		db:     db,
		mapper: mapper.NewLabelMapper(),
	}
}

func (r *LabelRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LabelRepositoryImpl) Create(ctx context.Context, label *entity.Label) error {
	m := r.mapper.ToModel(label)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*label = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabelRepositoryImpl) Update(ctx context.Context, label *entity.Label) error {
	m := r.mapper.ToModel(label)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*label = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// Detach from notes first; labels have no soft delete.
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM note_labels WHERE label_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Label{}, id).Error
}

func (r *LabelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Label, error) {
	var m model.Label
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LabelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Label, error) {
	var models []*model.Label
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByNameAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LabelRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Label{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
