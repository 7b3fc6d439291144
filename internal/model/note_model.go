package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title     string         `gorm:"type:text;not null;default:''"`
	Content   string         `gorm:"type:text;not null;default:''"`
	Pinned    bool           `gorm:"not null;default:false;index"`
	Encrypted bool           `gorm:"not null;default:false"`
	Labels    []*Label       `gorm:"many2many:note_labels"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	// UpdatedAt is the user-visible edited instant, written by the services
	// on content edits only. GORM must not bump it on metadata writes like
	// pinning or vault sealing, so auto-tracking is off.
	UpdatedAt *time.Time     `gorm:"autoUpdateTime:false"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
