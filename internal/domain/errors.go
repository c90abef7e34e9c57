package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when no user is logged in.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the logged-in user may not access a resource.
	ErrForbidden = errors.New("forbidden operation")

	// ErrInvalidCredentials is returned when a login fails.
	// It deliberately does not say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotEnabled is returned when a pending or disabled user tries to log in.
	ErrUserNotEnabled = errors.New("user account is not enabled")
)
