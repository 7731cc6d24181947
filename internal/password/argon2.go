package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params holds the parameters for argon2id hashing.
type Argon2Params struct {
	// Memory is the amount of memory used in KiB.
	Memory uint32

	// Iterations is the number of passes over the memory.
	Iterations uint32

	// Parallelism is the number of threads to use.
	Parallelism uint8

	// SaltLength is the length of the random salt in bytes.
	SaltLength uint32

	// KeyLength is the length of the derived key in bytes.
	KeyLength uint32
}

// DefaultArgon2Params follows the OWASP recommendations for password storage.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2Hasher implements the Hasher interface using argon2id.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates an argon2id hasher with the given parameters.
// Zero-valued params fall back to DefaultArgon2Params.
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	if params == (Argon2Params{}) {
		params = DefaultArgon2Params()
	}
	return &Argon2Hasher{params: params}
}

// Hash creates an argon2id hash in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify checks if a password matches an argon2id hash.
func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// NeedsRehash checks if a hash was created with different parameters.
func (h *Argon2Hasher) NeedsRehash(encodedHash string) bool {
	params, _, _, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return true
	}

	return params.Memory != h.params.Memory ||
		params.Iterations != h.params.Iterations ||
		params.Parallelism != h.params.Parallelism ||
		params.KeyLength != h.params.KeyLength
}

// decodeArgon2Hash parses an argon2id hash in PHC string format.
func decodeArgon2Hash(encodedHash string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return params, nil, nil, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, errors.New("unsupported algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, err
	}
	if version != argon2.Version {
		return params, nil, nil, errors.New("incompatible argon2 version")
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, err
	}
	params.SaltLength = uint32(len(salt))

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, err
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}

var _ Hasher = (*Argon2Hasher)(nil)
