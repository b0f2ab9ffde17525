package utils

import (
	"errors"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	const password = "secret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == password {
		t.Error("hash must never equal the plaintext password")
	}
	if hash == "" {
		t.Error("expected non-empty hash")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	const password = "secret123"

	first, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// bcrypt embeds a random salt, so two digests of one password differ.
	if first == second {
		t.Error("two hashes of the same password must differ")
	}

	// Both digests still verify against the original password.
	if err := VerifyPassword(first, password); err != nil {
		t.Errorf("first hash failed verification: %v", err)
	}
	if err := VerifyPassword(second, password); err != nil {
		t.Errorf("second hash failed verification: %v", err)
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = VerifyPassword(hash, "wrong")
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got: %v", err)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	err := VerifyPassword("not-a-bcrypt-hash", "secret123")
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if errors.Is(err, ErrHashMismatch) {
		t.Error("malformed hash must not be reported as a plain mismatch")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	// bcrypt rejects passwords longer than 72 bytes.
	if _, err := HashPassword(string(long)); err == nil {
		t.Error("expected error for over-long password")
	}
}
