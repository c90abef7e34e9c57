// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document database from the
// handlers, which only ever see domain entities and the errors declared here.
package store
