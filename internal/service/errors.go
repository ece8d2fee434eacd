package service

import "errors"

// Failure taxonomy shared by all services. Handlers translate these into
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrInvalidCredentials means the username/password pair did not match a
	// known user. Unknown user and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized means the bearer token is absent, malformed, revoked or expired.
	ErrUnauthorized = errors.New("missing or invalid token")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the request payload is malformed, empty or oversize.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreInconsistent means a partial write was detected: either a
	// compensating rollback failed, or metadata exists without its blob.
	// It is surfaced, never silently patched.
	ErrStoreInconsistent = errors.New("document store inconsistent")

	// ErrUnavailable means a backend dependency timed out or failed transiently
	// after the retry budget was exhausted.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrUsernameTaken means an account with the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)
