package crypto

import "errors"

// ErrInvalidParameter is returned for malformed hashing input (empty salt,
// non-positive iterations). It signals a programming error, never a user
// mistake.
var ErrInvalidParameter = errors.New("invalid hashing parameter")
