package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashMismatch is returned by VerifyPassword when the supplied password
// does not match the stored bcrypt digest.
var ErrHashMismatch = errors.New("password does not match stored hash")

// HashPassword computes a bcrypt digest of the given plaintext password
// using the default cost. bcrypt generates a fresh random salt on every
// call, so hashing the same password twice yields different digests that
// both verify against the original password.
//
// Returns the digest in bcrypt's standard encoded form
// ("$2a$10$..."), or an error if hashing fails (e.g. the password exceeds
// bcrypt's 72-byte limit).
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt
// digest using bcrypt's constant-time comparison primitive.
//
// Returns nil when the password matches, [ErrHashMismatch] when it does not,
// and a wrapped error when the stored value is not a valid bcrypt digest.
func VerifyPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrHashMismatch
	}

	return fmt.Errorf("error verifying password hash: %w", err)
}
