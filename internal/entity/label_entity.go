package entity

import (
	"time"

	"github.com/google/uuid"
)

// Label tags notes. Names are unique; uniqueness is enforced by the store,
// not here. Hidden labels stay attached to their notes but are excluded
// from note listings.
type Label struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Visible   bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
