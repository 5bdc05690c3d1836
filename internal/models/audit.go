// audit.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package models

import (
	"time"
)

// Audit action tags. Rows are write-once; an action is either a whole-object
// snapshot (create/delete), a per-field diff (update), or a fixed state toggle.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionArchive    = "archive"
	AuditActionUnarchive  = "unarchive"
	AuditActionComplete   = "complete"
	AuditActionUncomplete = "uncomplete"
)

// CustomerAuditLog records one customer state change. Rows cascade-delete with
// their customer; an audit trail does not outlive its subject.
type CustomerAuditLog struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint64    `gorm:"not null;index" json:"customerId"`
	Action     string    `gorm:"size:20;not null" json:"action"`
	FieldName  *string   `gorm:"size:64" json:"fieldName"`
	OldValue   *string   `gorm:"type:text" json:"oldValue"`
	NewValue   *string   `gorm:"type:text" json:"newValue"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     string    `gorm:"size:64;not null;index" json:"userId"`
}

// CustomerNoteAuditLog records one note state change.
type CustomerNoteAuditLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	NoteID    uint64    `gorm:"not null;index" json:"noteId"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	FieldName *string   `gorm:"size:64" json:"fieldName"`
	OldValue  *string   `gorm:"type:text" json:"oldValue"`
	NewValue  *string   `gorm:"type:text" json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `gorm:"size:64;not null;index" json:"userId"`
}

// TodoAuditLog records one todo state change.
type TodoAuditLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TodoID    uint64    `gorm:"not null;index" json:"todoId"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	FieldName *string   `gorm:"size:64" json:"fieldName"`
	OldValue  *string   `gorm:"type:text" json:"oldValue"`
	NewValue  *string   `gorm:"type:text" json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `gorm:"size:64;not null;index" json:"userId"`
}

// TableName overrides the table name for CustomerAuditLog
func (CustomerAuditLog) TableName() string {
	return "customer_audit_logs"
}

// TableName overrides the table name for CustomerNoteAuditLog
func (CustomerNoteAuditLog) TableName() string {
	return "customer_note_audit_logs"
}

// TableName overrides the table name for TodoAuditLog
func (TodoAuditLog) TableName() string {
	return "todo_audit_logs"
}
