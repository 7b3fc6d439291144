package specification

import (
	"time"

	"gorm.io/gorm"
)

// Pinned filters on the pinned flag.
type Pinned struct {
	Value bool
}

func (s Pinned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.pinned = ?", s.Value)
}

// InTrash selects soft-deleted notes only. GORM's default scope hides them,
// so the query runs unscoped with an explicit deleted_at check.
type InTrash struct{}

func (s InTrash) Apply(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Where("notes.deleted_at IS NOT NULL")
}

// IncludeTrashed widens a query to both live and trashed notes.
type IncludeTrashed struct{}

func (s IncludeTrashed) Apply(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// TrashedBefore selects notes that have been in the trash since before the
// cutoff. Used by the retention sweep.
type TrashedBefore struct {
	Cutoff time.Time
}

func (s TrashedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Where("notes.deleted_at IS NOT NULL AND notes.deleted_at < ?", s.Cutoff)
}

// TitleContains matches notes whose title holds the query as a substring,
// case-insensitively.
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.title LIKE ?", "%"+s.Query+"%")
}

// HasLabel filters notes carrying a label with the given name.
type HasLabel struct {
	Name string
}

func (s HasLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN note_labels ON note_labels.note_id = notes.id").
		Joins("JOIN labels ON labels.id = note_labels.label_id").
		Where("labels.name = ?", s.Name)
}
