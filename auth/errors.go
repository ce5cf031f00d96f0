package auth

import "errors"

// Sentinel errors for authentication outcomes.
var (
	// ErrMissingCredentials indicates the request carried no usable credential.
	ErrMissingCredentials = errors.New("auth: missing credentials")

	// ErrInvalidCredentials indicates the presented credential failed validation.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrTokenExpired indicates a bearer token outside its validity window.
	ErrTokenExpired = errors.New("auth: token expired")

	// ErrTokenMalformed indicates a bearer token that could not be parsed.
	ErrTokenMalformed = errors.New("auth: token malformed")
)
