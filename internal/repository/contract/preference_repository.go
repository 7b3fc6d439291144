package contract

import (
	"context"

	"keepnotes-be/internal/entity"
)

type PreferenceRepository interface {
	// Get returns the settings row, planting the default one on first use.
	Get(ctx context.Context) (*entity.Preferences, error)
	Save(ctx context.Context, preferences *entity.Preferences) error
}
