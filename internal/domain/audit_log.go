package domain

import "time"

// AuditAction captures the kind of mutation recorded.
type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditLog is an immutable append-only record written by the storage layer on
// every mutation of a tracked entity. Entries are never updated or deleted.
type AuditLog struct {
	ID          string
	TableName   string
	RecordID    string
	Action      AuditAction
	OldData     map[string]any
	NewData     map[string]any
	PerformedBy *string
	PerformedAt time.Time
}
