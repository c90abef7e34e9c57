// Package service contains the application use cases: logging users in and
// out, reading user profiles and log entries with access checks, and sending
// administrative mail. Services depend on the store interfaces and never on a
// concrete database.
package service
