package token

import "errors"

// Sentinel errors for use with errors.Is(). Callers at the HTTP boundary
// must not distinguish these in their responses; they all map to 401.
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenInvalidSig  = errors.New("token signature is invalid")
)

// IsInvalid returns true if the error is any token verification failure.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenInvalidSig)
}
