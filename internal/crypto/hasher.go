// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLength is the size in bytes of every derived hash (256 bits).
	KeyLength = 32

	// MinSaltLength is the smallest salt NewSalt will produce (128 bits).
	MinSaltLength = 16
)

// pbkdf2Hasher is the private implementation of [PasswordHasher] using
// PBKDF2 with HMAC-SHA256 as the pseudorandom function.
type pbkdf2Hasher struct {
	// keyLen is the derived key length in bytes.
	keyLen int

	// random is the entropy source for salts. crypto/rand in production.
	random io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] producing 32-byte
// PBKDF2-HMAC-SHA256 hashes and drawing salts from crypto/rand.
//
// The returned hasher holds no mutable state and is safe for concurrent use.
func NewPasswordHasher() PasswordHasher {
	return &pbkdf2Hasher{
		keyLen: KeyLength,
		random: rand.Reader,
	}
}

// Derive implements [PasswordHasher].
func (h *pbkdf2Hasher) Derive(plaintext string, salt []byte, iterations int) ([]byte, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParameter, iterations)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt is empty", ErrInvalidParameter)
	}

	return pbkdf2.Key([]byte(plaintext), salt, iterations, h.keyLen, sha256.New), nil
}

// Verify implements [PasswordHasher]. The comparison goes through
// [subtle.ConstantTimeCompare] so the time taken does not depend on where
// the first differing byte sits.
func (h *pbkdf2Hasher) Verify(plaintext string, salt, expected []byte, iterations int) (bool, error) {
	derived, err := h.Derive(plaintext, salt, iterations)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(derived, expected) == 1, nil
}

// NewSalt implements [PasswordHasher].
func (h *pbkdf2Hasher) NewSalt(length int) ([]byte, error) {
	if length < MinSaltLength {
		length = MinSaltLength
	}

	salt := make([]byte, length)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}
	return salt, nil
}
