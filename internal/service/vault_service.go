package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/memory"
	"keepnotes-be/internal/repository/specification"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/pkg/crypto"
	"keepnotes-be/pkg/events"
	"keepnotes-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// vaultSentinelText is the known plaintext sealed when the vault is enabled.
// Decrypting it proves a password without storing anything key-derived.
const vaultSentinelText = "keepnotes.vault.v1"

type IVaultService interface {
	Status(ctx context.Context, sessionId string) (*dto.VaultStatusResponse, error)
	Enable(ctx context.Context, req *dto.EnableVaultRequest) (*dto.VaultSessionResponse, error)
	Unlock(ctx context.Context, req *dto.UnlockVaultRequest) (*dto.VaultSessionResponse, error)
	Lock(ctx context.Context, sessionId string) error
	Disable(ctx context.Context, sessionId string, req *dto.DisableVaultRequest) error
}

type vaultService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.VaultSessionRepository
	publisherService IPublisherService
	jwtSecret        string
	sessionTTL       time.Duration
}

func NewVaultService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.VaultSessionRepository,
	publisherService IPublisherService,
	jwtSecret string,
	sessionTTL time.Duration,
) IVaultService {
	return &vaultService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		publisherService: publisherService,
		jwtSecret:        jwtSecret,
		sessionTTL:       sessionTTL,
	}
}

func (s *vaultService) Status(ctx context.Context, sessionId string) (*dto.VaultStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	locked := prefs.VaultEnabled
	if locked && sessionId != "" {
		if _, ok := s.sessions.Get(sessionId); ok {
			locked = false
		}
	}

	state := store.StateUnlocked
	if locked {
		state = store.StateLocked
	}
	return &dto.VaultStatusResponse{
		Enabled: prefs.VaultEnabled,
		Locked:  locked,
		State:   state,
	}, nil
}

func (s *vaultService) Enable(ctx context.Context, req *dto.EnableVaultRequest) (*dto.VaultSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if prefs.VaultEnabled {
		return nil, ErrVaultEnabled
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	key := crypto.DeriveKey(req.Password, salt)

	sentinel, err := crypto.Encrypt(key, vaultSentinelText)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Seal every note, trashed ones included: a later restore must not
	// resurrect plaintext.
	notes, err := uow.NoteRepository().FindAll(ctx, specification.IncludeTrashed{})
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		if err := sealNote(note, key); err != nil {
			return nil, err
		}
		if err := uow.NoteRepository().Update(ctx, note); err != nil {
			return nil, err
		}
	}

	prefs.VaultEnabled = true
	prefs.VaultSalt = base64.StdEncoding.EncodeToString(salt)
	prefs.VaultSentinel = sentinel
	if err := uow.PreferenceRepository().Save(ctx, prefs); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishVaultEvent(ctx, events.VaultEnabled)

	return s.openSession(key)
}

func (s *vaultService) Unlock(ctx context.Context, req *dto.UnlockVaultRequest) (*dto.VaultSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	if !prefs.VaultEnabled {
		return nil, ErrVaultDisabled
	}

	key, err := s.verifyPassword(prefs, req.Password)
	if err != nil {
		return nil, err
	}

	return s.openSession(key)
}

func (s *vaultService) Lock(ctx context.Context, sessionId string) error {
	if sessionId != "" {
		s.sessions.Delete(sessionId)
	}
	s.publishVaultEvent(ctx, events.VaultLocked)
	return nil
}

func (s *vaultService) Disable(ctx context.Context, sessionId string, req *dto.DisableVaultRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return err
	}
	if !prefs.VaultEnabled {
		return ErrVaultDisabled
	}

	key, err := s.verifyPassword(prefs, req.Password)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	notes, err := uow.NoteRepository().FindAll(ctx, specification.IncludeTrashed{})
	if err != nil {
		return err
	}
	for _, note := range notes {
		if err := openNote(note, key); err != nil {
			return err
		}
		if err := uow.NoteRepository().Update(ctx, note); err != nil {
			return err
		}
	}

	prefs.VaultEnabled = false
	prefs.VaultSalt = ""
	prefs.VaultSentinel = ""
	if err := uow.PreferenceRepository().Save(ctx, prefs); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessions.Flush()
	s.publishVaultEvent(ctx, events.VaultDisabled)
	return nil
}

// verifyPassword re-derives the key from the stored salt and proves it
// against the sentinel. A failed proof is a wrong password.
func (s *vaultService) verifyPassword(prefs *entity.Preferences, password string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(prefs.VaultSalt)
	if err != nil {
		return nil, err
	}
	key := crypto.DeriveKey(password, salt)

	if _, err := crypto.Decrypt(key, prefs.VaultSentinel); err != nil {
		if errors.Is(err, crypto.ErrInvalidCiphertext) {
			return nil, ErrWrongPassword
		}
		return nil, err
	}
	return key, nil
}

// openSession caches the derived key under a fresh session id and signs a
// token carrying that id. The cache TTL is the auto-lock window.
func (s *vaultService) openSession(key []byte) (*dto.VaultSessionResponse, error) {
	sessionId := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(s.sessionTTL)

	s.sessions.Save(&store.VaultSession{
		ID:         sessionId,
		Key:        key,
		UnlockedAt: now,
	})

	claims := jwt.MapClaims{
		"session_id": sessionId,
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.VaultSessionResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *vaultService) publishVaultEvent(ctx context.Context, eventType string) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
	// The feed is auxiliary, a publish failure never fails the request.
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

// sealNote encrypts a note's title and content in place.
func sealNote(note *entity.Note, key []byte) error {
	if note.Encrypted {
		return nil
	}
	title, err := crypto.Encrypt(key, note.Title)
	if err != nil {
		return err
	}
	content, err := crypto.Encrypt(key, note.Content)
	if err != nil {
		return err
	}
	note.Title, note.Content, note.Encrypted = title, content, true
	return nil
}

// openNote decrypts a note's title and content in place.
func openNote(note *entity.Note, key []byte) error {
	if !note.Encrypted {
		return nil
	}
	title, err := crypto.Decrypt(key, note.Title)
	if err != nil {
		return err
	}
	content, err := crypto.Decrypt(key, note.Content)
	if err != nil {
		return err
	}
	note.Title, note.Content, note.Encrypted = title, content, false
	return nil
}
