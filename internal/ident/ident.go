package ident

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Identifier validation errors.
var (
	// ErrInvalidName is returned when a value is not a valid name token.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidIUID is returned when a value is not 32 hexadecimal characters.
	ErrInvalidIUID = errors.New("invalid iuid")
)

// IUIDLength is the number of hex characters in an IUID.
const IUIDLength = 32

var (
	nameRegex = regexp.MustCompile(`(?i)^[a-z][a-z0-9_-]*$`)
	iuidRegex = regexp.MustCompile(`(?i)^[a-f0-9]{32}$`)
)

// ParseFunc validates a raw identifier and returns its normalized form.
type ParseFunc func(string) (string, error)

// ParseName validates a name: a letter followed by letters, digits,
// underscores or hyphens. Matching is case-insensitive and the returned
// value is lowercased.
func ParseName(value string) (string, error) {
	if !nameRegex.MatchString(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, value)
	}
	return strings.ToLower(value), nil
}

// ParseIUID validates an IUID. Matching is case-insensitive and the returned
// value is lowercased.
func ParseIUID(value string) (string, error) {
	if !iuidRegex.MatchString(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIUID, value)
	}
	return strings.ToLower(value), nil
}

// NewIUID returns a new IUID: a random (version 4) UUID rendered as 32
// lowercase hex characters without separators.
func NewIUID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
