// Package ids generates the random identifiers used for projects and tasks.
package ids

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns a random 32-character hex identifier (16 bytes of entropy).
func New() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
