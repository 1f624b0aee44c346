package accounts

import "errors"

// Client-facing failure kinds. Controllers map these to a 400 with a fixed
// message; any other error is internal and answered with a generic 500.
var (
	ErrDuplicateAccount   = errors.New("email already in use")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
)
