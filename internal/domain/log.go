package domain

import (
	"time"

	"github.com/phrazzld/webapp/internal/ident"
)

// DocTypeLog is the doctype of log entry documents.
const DocTypeLog = "log"

// LogAction names what happened to the logged document.
type LogAction string

// Log actions
const (
	LogActionLogin  LogAction = "login"
	LogActionLogout LogAction = "logout"
)

// LogEntry records an action performed on a document.
type LogEntry struct {
	IUID      string    `json:"_id"`
	Rev       string    `json:"_rev,omitempty"`
	DocType   string    `json:"doctype"`
	DocID     string    `json:"docid"`
	Action    LogAction `json:"action"`
	Username  string    `json:"username"`
	Timestamp string    `json:"timestamp"`
}

// NewLogEntry creates a log entry with a fresh IUID for an action by
// username on the document docID.
func NewLogEntry(docID, username string, action LogAction, now time.Time) *LogEntry {
	return &LogEntry{
		IUID:      ident.NewIUID(),
		DocType:   DocTypeLog,
		DocID:     docID,
		Action:    action,
		Username:  username,
		Timestamp: FormatTime(now),
	}
}
