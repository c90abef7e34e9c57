package store

import (
	"context"

	"github.com/phrazzld/webapp/internal/domain"
)

// LogStore defines the interface for log entry persistence.
type LogStore interface {
	// Create saves a new log entry. The entry's IUID must already be set.
	Create(ctx context.Context, entry *domain.LogEntry) error

	// GetByIUID retrieves a log entry by its IUID.
	// Returns ErrLogNotFound if the entry does not exist.
	GetByIUID(ctx context.Context, iuid string) (*domain.LogEntry, error)
}
