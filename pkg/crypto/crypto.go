// Package crypto implements the password-based encryption behind the note
// vault. Keys come from PBKDF2-SHA256 over the user's password; content is
// sealed with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// SaltSize is the length of the random salt stored next to the vault
	// sentinel.
	SaltSize = 16

	pbkdf2Iterations = 210_000
)

var (
	// ErrInvalidCiphertext is returned when decryption fails, including on a
	// wrong key.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidKey is returned when the key has the wrong length.
	ErrInvalidKey = errors.New("invalid key")
)

// NewSalt produces a fresh random salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey stretches a password into an AES-256 key.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, KeySize, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM and encodes the result as base64.
// The random nonce is prepended to the ciphertext.
func Encrypt(key []byte, plaintext string) (string, error) {
	if len(key) != KeySize {
		return "", ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any failure, wrong key included, surfaces as
// ErrInvalidCiphertext.
func Decrypt(key []byte, ciphertext string) (string, error) {
	if len(key) != KeySize {
		return "", ErrInvalidKey
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}

// EncryptWithPassword derives a key from the password and salt, then seals
// the plaintext.
func EncryptWithPassword(password string, salt []byte, plaintext string) (string, error) {
	return Encrypt(DeriveKey(password, salt), plaintext)
}

// DecryptWithPassword derives a key from the password and salt, then opens
// the ciphertext.
func DecryptWithPassword(password string, salt []byte, ciphertext string) (string, error) {
	return Decrypt(DeriveKey(password, salt), ciphertext)
}
