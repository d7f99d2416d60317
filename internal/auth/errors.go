package auth

import "errors"

var (
	// ErrUnauthorized represents missing or invalid authentication tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbiddenRole is returned for a valid token whose role may not call the API.
	ErrForbiddenRole = errors.New("role not permitted")
)
