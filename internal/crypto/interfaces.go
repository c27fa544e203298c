// Package crypto holds the password key-derivation primitives used by the
// credential core. It knows nothing about accounts, storage or transport;
// its only job is to stretch passwords into hashes and compare them safely.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and verifies PBKDF2 password hashes.
//
// The iteration count is always passed explicitly so that hashes derived
// under an older, lower default stay verifiable after the configured cost
// is raised.
type PasswordHasher interface {
	// Derive stretches plaintext with salt over the given number of
	// iterations and returns a fixed-length hash. Returns
	// ErrInvalidParameter if iterations < 1 or salt is empty.
	Derive(plaintext string, salt []byte, iterations int) ([]byte, error)

	// Verify re-derives the hash of plaintext and compares it with expected
	// in constant time. A mismatch of length or content yields false with a
	// nil error; only malformed parameters produce an error.
	Verify(plaintext string, salt, expected []byte, iterations int) (bool, error)

	// NewSalt reads length random bytes from the OS CSPRNG. Lengths below
	// MinSaltLength are raised to MinSaltLength.
	NewSalt(length int) ([]byte, error)
}
