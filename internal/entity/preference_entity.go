package entity

import "time"

// SwipeAction is what a horizontal swipe on a note tile does.
type SwipeAction string

const (
	SwipePin   SwipeAction = "pin"
	SwipeTrash SwipeAction = "trash"
	SwipeNone  SwipeAction = "none"
)

// Layout is how the note list is arranged.
type Layout string

const (
	LayoutList Layout = "list"
	LayoutGrid Layout = "grid"
)

// Preferences is the single-row settings record for the device. The sort
// pair feeds the note comparator; the vault fields hold the salt and the
// encrypted verifier of the content vault, never a key.
type Preferences struct {
	Id            uint `gorm:"primaryKey"`
	SortKey       SortKey
	SortAscending bool
	SwipeLeft     SwipeAction
	SwipeRight    SwipeAction
	Layout        Layout
	VaultEnabled  bool
	VaultSalt     string
	VaultSentinel string
	UpdatedAt     *time.Time
}

// DefaultPreferences is the record planted on first run.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Id:            1,
		SortKey:       SortByEditedDate,
		SortAscending: false,
		SwipeLeft:     SwipeTrash,
		SwipeRight:    SwipePin,
		Layout:        LayoutList,
	}
}
