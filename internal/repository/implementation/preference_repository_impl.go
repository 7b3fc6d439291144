package implementation

import (
	"context"
	"errors"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/mapper"
	"keepnotes-be/internal/model"
	"keepnotes-be/internal/repository/contract"

	"gorm.io/gorm"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) Get(ctx context.Context) (*entity.Preferences, error) {
	var m model.Preference
	err := r.db.WithContext(ctx).First(&m, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := r.mapper.ToModel(entity.DefaultPreferences())
		if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return r.mapper.ToEntity(defaults), nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) Save(ctx context.Context, preferences *entity.Preferences) error {
	m := r.mapper.ToModel(preferences)
	m.Id = 1
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*preferences = *r.mapper.ToEntity(m)
	return nil
}
