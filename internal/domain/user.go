package domain

import (
	"errors"
	"fmt"

	"github.com/phrazzld/webapp/internal/ident"
)

// DocTypeUser is the doctype of user documents.
const DocTypeUser = "user"

// Role is the role of a user.
type Role string

// User roles
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is the account status of a user.
type Status string

// User statuses
const (
	StatusPending  Status = "pending"
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidStatus       = errors.New("invalid status")
)

// User represents a registered user, as stored in the database.
type User struct {
	IUID     string `json:"_id"`
	Rev      string `json:"_rev,omitempty"`
	DocType  string `json:"doctype"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Status   Status `json:"status"`
	// HashedPassword is the bcrypt hash; never exposed in API responses.
	HashedPassword string `json:"password"`
	Created        string `json:"created"`
	Modified       string `json:"modified"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsEnabled reports whether the user may log in.
func (u *User) IsEnabled() bool {
	return u != nil && u.Status == StatusEnabled
}

// CanView reports whether u may view data owned by the named user.
// Admins may view everything; other users only their own data.
func (u *User) CanView(username string) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.Username == username
}

// Validate checks if the User has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (u *User) Validate() error {
	if _, err := ident.ParseIUID(u.IUID); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if u.Username == "" {
		return fmt.Errorf("%w: %v", ErrValidation, ErrEmptyUsername)
	}
	if _, err := ident.ParseName(u.Username); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: %v", ErrValidation, ErrEmptyEmail)
	}
	if u.HashedPassword == "" {
		return fmt.Errorf("%w: %v", ErrValidation, ErrEmptyHashedPassword)
	}
	switch u.Role {
	case RoleAdmin, RoleUser:
	default:
		return fmt.Errorf("%w: %v %q", ErrValidation, ErrInvalidRole, u.Role)
	}
	switch u.Status {
	case StatusPending, StatusEnabled, StatusDisabled:
	default:
		return fmt.Errorf("%w: %v %q", ErrValidation, ErrInvalidStatus, u.Status)
	}
	return nil
}
