// todo.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"errors"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"gorm.io/gorm"
)

// TodoListFilter narrows ListTodos. Nil fields mean no filter.
type TodoListFilter struct {
	Completed  *bool
	CustomerID *uint64
}

// CreateTodo inserts a todo for the user and writes its create snapshot in
// the same transaction. Customer and note links are taken as given; a stale
// id fails on the foreign key rather than on a pre-check.
func CreateTodo(db *gorm.DB, userID string, in *validation.CreateTodoInput) (*models.Todo, error) {
	in.ApplyDefaults()

	todo := &models.Todo{
		Title:       in.Title,
		Description: strPtrOrNil(in.Description),
		Priority:    in.Priority,
		DueDate:     parseDatePtr(in.DueDate),
		UserID:      userID,
	}
	if in.CustomerID != nil {
		id := in.CustomerID.Uint64()
		todo.CustomerID = &id
	}
	if in.NoteID != nil {
		id := in.NoteID.Uint64()
		todo.NoteID = &id
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(todo).Error; err != nil {
			return err
		}
		return logTodoCreate(tx, todo, userID)
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// GetTodo fetches one todo owned by the user.
func GetTodo(db *gorm.DB, userID string, id uint64) (*models.Todo, error) {
	var todo models.Todo
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// ListTodos returns the user's todos, newest first, optionally filtered by
// completion state and linked customer.
func ListTodos(db *gorm.DB, userID string, filter TodoListFilter) ([]models.Todo, error) {
	query := db.Where("user_id = ?", userID)
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var todos []models.Todo
	if err := query.Order("created_at desc, id desc").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo applies a partial update to an owned todo. Nil input fields are
// untouched. An empty DueDate string clears the date; a zero CustomerID
// severs the customer link. Completed changes here are plain field updates
// and do not use the toggle actions.
func UpdateTodo(db *gorm.DB, userID string, id uint64, in *validation.UpdateTodoInput) (*models.Todo, error) {
	var updated *models.Todo
	err := db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		old := todo

		if in.Title != nil {
			todo.Title = *in.Title
		}
		if in.Description != nil {
			todo.Description = strPtrOrNil(*in.Description)
		}
		if in.Priority != nil {
			todo.Priority = *in.Priority
		}
		if in.DueDate != nil {
			todo.DueDate = parseDatePtr(*in.DueDate)
		}
		if in.CustomerID != nil {
			if cid := in.CustomerID.Uint64(); cid == 0 {
				todo.CustomerID = nil
			} else {
				todo.CustomerID = &cid
			}
		}
		if in.Completed != nil {
			todo.Completed = *in.Completed
		}

		if err := tx.Save(&todo).Error; err != nil {
			return err
		}
		if err := logTodoUpdate(tx, &old, &todo, userID); err != nil {
			return err
		}
		updated = &todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTodo removes an owned todo. The delete snapshot is written first so
// it exists inside the transaction; the cascade then takes the todo's whole
// audit trail with it.
func DeleteTodo(db *gorm.DB, userID string, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := logTodoDelete(tx, &todo, userID); err != nil {
			return err
		}
		return tx.Delete(&todo).Error
	})
}

// ToggleTodo flips the completion flag on an owned todo and writes the
// complete/uncomplete row.
func ToggleTodo(db *gorm.DB, userID string, id uint64) (*models.Todo, error) {
	var updated *models.Todo
	err := db.Transaction(func(tx *gorm.DB) error {
		var todo models.Todo
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		todo.Completed = !todo.Completed
		if err := tx.Save(&todo).Error; err != nil {
			return err
		}
		if err := logTodoToggled(tx, todo.ID, todo.Completed, userID); err != nil {
			return err
		}
		updated = &todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListTodoAudit returns an owned todo's audit trail, newest first.
func ListTodoAudit(db *gorm.DB, userID string, todoID uint64) ([]models.TodoAuditLog, error) {
	if _, err := GetTodo(db, userID, todoID); err != nil {
		return nil, err
	}

	var logs []models.TodoAuditLog
	err := db.Where("todo_id = ?", todoID).
		Order("created_at desc, id desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// RecentTodoAudit returns the user's latest todo audit rows across all todos.
// Rows are selected by the user id stamped on the audit row itself, so rows
// for since-deleted todos would appear if the cascade had not removed them.
func RecentTodoAudit(db *gorm.DB, userID string, limit int) ([]models.TodoAuditLog, error) {
	if limit <= 0 {
		limit = 20
	}

	var logs []models.TodoAuditLog
	err := db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
