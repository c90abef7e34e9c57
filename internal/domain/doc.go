// Package domain defines the core business entities (users and log entries),
// the sentinel errors shared across layers, and the canonical timestamp format.
//
// Entities carry JSON tags for their stored document shape; API responses are
// built from them explicitly so stored-only fields never leak.
package domain
