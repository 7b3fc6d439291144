package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error = %v, want nil", err)
	}
	key := DeriveKey("correct horse battery staple", salt)

	tests := []string{
		"",
		"short",
		`[{"insert":"secret shopping list\n"}]`,
		strings.Repeat("long content ", 500),
		"unicode: ✅ ⬜ ümlaut",
	}

	for _, plaintext := range tests {
		sealed, err := Encrypt(key, plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error = %v, want nil", plaintext, err)
		}
		if sealed == plaintext && plaintext != "" {
			t.Errorf("ciphertext equals plaintext for %q", plaintext)
		}
		opened, err := Decrypt(key, sealed)
		if err != nil {
			t.Fatalf("Decrypt error = %v, want nil", err)
		}
		if opened != plaintext {
			t.Errorf("Decrypt = %q, want %q", opened, plaintext)
		}
	}
}

func TestEncryptProducesFreshNonces(t *testing.T) {
	salt, _ := NewSalt()
	key := DeriveKey("pw", salt)

	first, err := Encrypt(key, "same input")
	if err != nil {
		t.Fatalf("Encrypt error = %v, want nil", err)
	}
	second, err := Encrypt(key, "same input")
	if err != nil {
		t.Fatalf("Encrypt error = %v, want nil", err)
	}
	if first == second {
		t.Error("two encryptions of the same input produced identical ciphertext")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	salt, _ := NewSalt()
	sealed, err := EncryptWithPassword("right password", salt, "payload")
	if err != nil {
		t.Fatalf("EncryptWithPassword error = %v, want nil", err)
	}

	if _, err := DecryptWithPassword("wrong password", salt, sealed); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("wrong password error = %v, want ErrInvalidCiphertext", err)
	}

	otherSalt, _ := NewSalt()
	if _, err := DecryptWithPassword("right password", otherSalt, sealed); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("wrong salt error = %v, want ErrInvalidCiphertext", err)
	}
}

func TestDecryptGarbage(t *testing.T) {
	salt, _ := NewSalt()
	key := DeriveKey("pw", salt)

	for _, ciphertext := range []string{"", "not base64 !!!", "c2hvcnQ="} {
		if _, err := Decrypt(key, ciphertext); !errors.Is(err, ErrInvalidCiphertext) {
			t.Errorf("Decrypt(%q) error = %v, want ErrInvalidCiphertext", ciphertext, err)
		}
	}
}

func TestKeyLengthChecked(t *testing.T) {
	if _, err := Encrypt([]byte("short"), "x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Encrypt short key error = %v, want ErrInvalidKey", err)
	}
	if _, err := Decrypt([]byte("short"), "x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Decrypt short key error = %v, want ErrInvalidKey", err)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt, _ := NewSalt()
	a := DeriveKey("pw", salt)
	b := DeriveKey("pw", salt)
	if string(a) != string(b) {
		t.Error("same password and salt produced different keys")
	}
	if len(a) != KeySize {
		t.Errorf("key length = %d, want %d", len(a), KeySize)
	}

	other := DeriveKey("other", salt)
	if string(a) == string(other) {
		t.Error("different passwords produced the same key")
	}
}
