package apperr

import "errors"

// Sentinel error kinds. Services wrap them with context via fmt.Errorf("%w")
// and controllers map them to HTTP statuses with errors.Is.
var (
	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized covers bad credentials and missing, invalid or revoked tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers unknown ids and resources owned by a different user.
	// Foreign resources deliberately look identical to missing ones.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers uniqueness violations (duplicate username or email).
	ErrConflict = errors.New("conflict")
	// ErrUpstream covers failures of the external LLM API, including output
	// that does not match the expected schema.
	ErrUpstream = errors.New("upstream LLM error")
)
