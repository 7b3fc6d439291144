package service

import "errors"

// Domain sentinels. The HTTP layer maps these onto statuses; services and
// tests check them with errors.Is.
var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrLabelNotFound  = errors.New("label not found")
	ErrDuplicateLabel = errors.New("label name already exists")

	// ErrEmptyNote signals that a save was discarded because both title and
	// content flattened to nothing. Controllers treat it as a quiet success.
	ErrEmptyNote = errors.New("empty note discarded")

	ErrVaultEnabled  = errors.New("vault already enabled")
	ErrVaultDisabled = errors.New("vault not enabled")
	ErrVaultLocked   = errors.New("vault is locked")
	ErrWrongPassword = errors.New("wrong vault password")
)
