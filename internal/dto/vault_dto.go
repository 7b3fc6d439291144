package dto

import "time"

type EnableVaultRequest struct {
	Password string `json:"password" validate:"required,min=4"`
}

type UnlockVaultRequest struct {
	Password string `json:"password" validate:"required"`
}

type DisableVaultRequest struct {
	Password string `json:"password" validate:"required"`
}

// VaultSessionResponse carries the signed session token an unlocked vault
// hands out; the client replays it as a Bearer header.
type VaultSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VaultStatusResponse struct {
	Enabled bool   `json:"enabled"`
	Locked  bool   `json:"locked"`
	State   string `json:"state"`
}
