package model

import (
	"time"

	"github.com/google/uuid"
)

type Label struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Visible   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Label) TableName() string {
	return "labels"
}
