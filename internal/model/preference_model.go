package model

import (
	"time"

	"gorm.io/datatypes"
)

// Preference is the single-row settings record. The sort pair drives note
// ordering; Interface holds the swipe/layout block as JSON; the vault fields
// persist the salt and encrypted verifier, never key material.
type Preference struct {
	Id            uint           `gorm:"primaryKey"`
	SortKey       string         `gorm:"type:varchar(32);not null;default:'edited_date'"`
	SortAscending bool           `gorm:"not null;default:false"`
	Interface     datatypes.JSON `gorm:"type:json"`
	VaultEnabled  bool           `gorm:"not null;default:false"`
	VaultSalt     string         `gorm:"type:text;not null;default:''"`
	VaultSentinel string         `gorm:"type:text;not null;default:''"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}
