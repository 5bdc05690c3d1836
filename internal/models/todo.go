// todo.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package models

import (
	"time"
)

// Todo priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo is a task item, optionally linked to a customer and to the note it
// originated from. Both links are severed (SET NULL) when the target goes away.
type Todo struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Priority    string     `gorm:"size:20;not null;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"dueDate"`
	CustomerID  *uint64    `gorm:"index" json:"customerId"`
	NoteID      *uint64    `gorm:"index" json:"noteId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UserID      string     `gorm:"size:64;not null;index" json:"userId"`

	AuditLogs []TodoAuditLog `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Todo
func (Todo) TableName() string {
	return "todos"
}
