package repositories

import "errors"

// ErrNotFound is returned when a requested document is absent, or when a
// single-document read fails to map onto its entity shape.
var ErrNotFound = errors.New("repositories: not found")

// AuthError carries a credential or account failure. The message is the
// provider's own text, passed through to the caller unmodified.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
