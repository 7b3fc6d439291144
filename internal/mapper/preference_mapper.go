package mapper

import (
	"encoding/json"
	"time"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/model"
)

// interfaceSettings is the shape of the preference row's JSON block.
type interfaceSettings struct {
	SwipeLeft  string `json:"swipe_left"`
	SwipeRight string `json:"swipe_right"`
	Layout     string `json:"layout"`
}

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.Preference) *entity.Preferences {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	// A missing or unreadable interface block falls back to the defaults;
	// the sort pair is never defaulted here.
	settings := interfaceSettings{
		SwipeLeft:  string(entity.SwipeTrash),
		SwipeRight: string(entity.SwipePin),
		Layout:     string(entity.LayoutList),
	}
	if len(p.Interface) > 0 {
		_ = json.Unmarshal(p.Interface, &settings)
	}

	return &entity.Preferences{
		Id:            p.Id,
		SortKey:       entity.SortKey(p.SortKey),
		SortAscending: p.SortAscending,
		SwipeLeft:     entity.SwipeAction(settings.SwipeLeft),
		SwipeRight:    entity.SwipeAction(settings.SwipeRight),
		Layout:        entity.Layout(settings.Layout),
		VaultEnabled:  p.VaultEnabled,
		VaultSalt:     p.VaultSalt,
		VaultSentinel: p.VaultSentinel,
		UpdatedAt:     updatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.Preferences) *model.Preference {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	settings, _ := json.Marshal(interfaceSettings{
		SwipeLeft:  string(p.SwipeLeft),
		SwipeRight: string(p.SwipeRight),
		Layout:     string(p.Layout),
	})

	return &model.Preference{
		Id:            p.Id,
		SortKey:       string(p.SortKey),
		SortAscending: p.SortAscending,
		Interface:     settings,
		VaultEnabled:  p.VaultEnabled,
		VaultSalt:     p.VaultSalt,
		VaultSentinel: p.VaultSentinel,
		UpdatedAt:     updatedAt,
	}
}
