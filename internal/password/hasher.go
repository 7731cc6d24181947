// Package password provides salted password hashing for the credential store.
//
// The original backend stored unsalted SHA-256 digests; that scheme is a
// known weakness and is deliberately not supported here. Bcrypt is the
// default, argon2id is available as an alternative.
package password

// Hasher defines the interface for password hashing algorithms.
type Hasher interface {
	// Hash creates a hash from a password.
	Hash(password string) (string, error)

	// Verify checks if a password matches a hash.
	Verify(password, hash string) (bool, error)

	// NeedsRehash reports whether the hash was created with parameters
	// different from the hasher's current configuration.
	NeedsRehash(hash string) bool
}
