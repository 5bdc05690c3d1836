// todos.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package validation

import (
	"github.com/cseboard/cse-whiteboard/internal/types"
)

// CreateTodoInput is the accepted shape for creating a todo. CustomerID and
// NoteID arrive from forms as either numbers or numeric strings.
type CreateTodoInput struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"omitempty,max=5000"`
	Priority    string            `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	CustomerID  *types.FlexUint64 `json:"customerId" validate:"omitempty,min=1"`
	NoteID      *types.FlexUint64 `json:"noteId" validate:"omitempty,min=1"`
}

// ApplyDefaults fills the priority default for forms that omitted it.
func (in *CreateTodoInput) ApplyDefaults() {
	if in.Priority == "" {
		in.Priority = "medium"
	}
}

// UpdateTodoInput is the accepted shape for a partial todo update. Nil fields
// are untouched; an empty DueDate or a zero CustomerID clears the value.
type UpdateTodoInput struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	Priority    *string           `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string           `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	CustomerID  *types.FlexUint64 `json:"customerId"`
	Completed   *bool             `json:"completed"`
}
