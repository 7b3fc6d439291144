package store

import "time"

// VaultSession is an unlocked vault held in memory. The derived key lives
// only here, never on disk; session expiry is the auto-lock.
type VaultSession struct {
	ID         string    `json:"id"`
	Key        []byte    `json:"-"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

const (
	// StateLocked means no session holds a key.
	StateLocked = "LOCKED"
	// StateUnlocked means at least one live session holds the derived key.
	StateUnlocked = "UNLOCKED"
)
