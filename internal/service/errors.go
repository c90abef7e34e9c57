package service

import "errors"

// Service errors. Callers check them with errors.Is; the API layer maps them
// to HTTP status codes.
var (
	// ErrNoEmail indicates a user has no email address to send mail to.
	ErrNoEmail = errors.New("user has no email address")
)
