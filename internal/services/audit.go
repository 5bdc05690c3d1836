// audit.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"gorm.io/gorm"
)

// Tracked field lists for update diffing. Order is fixed so audit rows for a
// single update land in a stable sequence. Products is not tracked: it is a
// JSON document, and customer updates have no whole-object fallback row.
var customerTrackedFields = []string{
	"name",
	"lastPatchDate",
	"lastPatchVersion",
	"temperament",
	"topology",
	"dumbledoreStage",
	"patchFrequency",
	"workload",
	"cloudManager",
	"mscUrl",
	"runbookUrl",
	"snowUrl",
}

var todoTrackedFields = []string{
	"title",
	"description",
	"priority",
	"dueDate",
	"customerId",
}

func strp(s string) *string {
	return &s
}

// normDate flattens a date to its date-only form so "same day, different
// time-of-day" never registers as a change.
func normDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return strp(t.UTC().Format("2006-01-02"))
}

func normUint(u *uint64) *string {
	if u == nil {
		return nil
	}
	return strp(strconv.FormatUint(*u, 10))
}

func eqValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// customerFieldValues maps a customer to its normalized tracked-field values.
func customerFieldValues(c *models.Customer) map[string]*string {
	return map[string]*string{
		"name":             strp(c.Name),
		"lastPatchDate":    normDate(c.LastPatchDate),
		"lastPatchVersion": c.LastPatchVersion,
		"temperament":      strp(c.Temperament),
		"topology":         strp(c.Topology),
		"dumbledoreStage":  strp(strconv.Itoa(c.DumbledoreStage)),
		"patchFrequency":   strp(c.PatchFrequency),
		"workload":         c.Workload,
		"cloudManager":     c.CloudManager,
		"mscUrl":           c.MscURL,
		"runbookUrl":       c.RunbookURL,
		"snowUrl":          c.SnowURL,
	}
}

// todoFieldValues maps a todo to its normalized tracked-field values.
func todoFieldValues(t *models.Todo) map[string]*string {
	return map[string]*string{
		"title":       strp(t.Title),
		"description": t.Description,
		"priority":    strp(t.Priority),
		"dueDate":     normDate(t.DueDate),
		"customerId":  normUint(t.CustomerID),
	}
}

type fieldDiff struct {
	field    string
	oldValue *string
	newValue *string
}

// diffFields compares two normalized value maps over the tracked list.
func diffFields(tracked []string, oldValues, newValues map[string]*string) []fieldDiff {
	var diffs []fieldDiff
	for _, field := range tracked {
		if !eqValue(oldValues[field], newValues[field]) {
			diffs = append(diffs, fieldDiff{field: field, oldValue: oldValues[field], newValue: newValues[field]})
		}
	}
	return diffs
}

func snapshot(v interface{}) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return strp(string(b)), nil
}

// logCustomerCreate writes the whole-object snapshot row for a new customer.
func logCustomerCreate(tx *gorm.DB, c *models.Customer, userID string) error {
	snap, err := snapshot(c)
	if err != nil {
		return err
	}
	return tx.Create(&models.CustomerAuditLog{
		CustomerID: c.ID,
		Action:     models.AuditActionCreate,
		NewValue:   snap,
		UserID:     userID,
	}).Error
}

// logCustomerUpdate writes one row per changed tracked field. Zero changed
// fields means zero rows; customers have no fallback row, unlike todos.
func logCustomerUpdate(tx *gorm.DB, old, updated *models.Customer, userID string) error {
	diffs := diffFields(customerTrackedFields, customerFieldValues(old), customerFieldValues(updated))
	if len(diffs) == 0 {
		return nil
	}

	rows := make([]models.CustomerAuditLog, 0, len(diffs))
	for _, d := range diffs {
		rows = append(rows, models.CustomerAuditLog{
			CustomerID: old.ID,
			Action:     models.AuditActionUpdate,
			FieldName:  strp(d.field),
			OldValue:   d.oldValue,
			NewValue:   d.newValue,
			UserID:     userID,
		})
	}
	return tx.Create(&rows).Error
}

// logCustomerArchived writes the fixed archive/unarchive row. The old value is
// the assumed inverse of the target state, not the value that was read.
func logCustomerArchived(tx *gorm.DB, customerID uint64, archived bool, userID string) error {
	action := models.AuditActionArchive
	if !archived {
		action = models.AuditActionUnarchive
	}
	return tx.Create(&models.CustomerAuditLog{
		CustomerID: customerID,
		Action:     action,
		FieldName:  strp("archived"),
		OldValue:   strp(strconv.FormatBool(!archived)),
		NewValue:   strp(strconv.FormatBool(archived)),
		UserID:     userID,
	}).Error
}

// logNoteCreate writes the whole-object snapshot row for a new note.
func logNoteCreate(tx *gorm.DB, n *models.CustomerNote, userID string) error {
	snap, err := snapshot(n)
	if err != nil {
		return err
	}
	return tx.Create(&models.CustomerNoteAuditLog{
		NoteID:   n.ID,
		Action:   models.AuditActionCreate,
		NewValue: snap,
		UserID:   userID,
	}).Error
}

// logNoteUpdate writes a single "note" field row when the body changed.
func logNoteUpdate(tx *gorm.DB, noteID uint64, oldBody, newBody, userID string) error {
	if oldBody == newBody {
		return nil
	}
	return tx.Create(&models.CustomerNoteAuditLog{
		NoteID:    noteID,
		Action:    models.AuditActionUpdate,
		FieldName: strp("note"),
		OldValue:  strp(oldBody),
		NewValue:  strp(newBody),
		UserID:    userID,
	}).Error
}

// logTodoCreate writes the whole-object snapshot row for a new todo.
func logTodoCreate(tx *gorm.DB, t *models.Todo, userID string) error {
	snap, err := snapshot(t)
	if err != nil {
		return err
	}
	return tx.Create(&models.TodoAuditLog{
		TodoID:   t.ID,
		Action:   models.AuditActionCreate,
		NewValue: snap,
		UserID:   userID,
	}).Error
}

// logTodoDelete writes the prior-state snapshot row. It must run before the
// row itself is deleted; the cascade then removes it together with the todo,
// which the product treats as expected behavior.
func logTodoDelete(tx *gorm.DB, t *models.Todo, userID string) error {
	snap, err := snapshot(t)
	if err != nil {
		return err
	}
	return tx.Create(&models.TodoAuditLog{
		TodoID:   t.ID,
		Action:   models.AuditActionDelete,
		OldValue: snap,
		UserID:   userID,
	}).Error
}

// logTodoUpdate writes one row per changed tracked field. Unlike customers,
// a no-op update still writes exactly one fallback row holding the full
// before/after snapshots, so every todo update is visible in the log.
func logTodoUpdate(tx *gorm.DB, old, updated *models.Todo, userID string) error {
	diffs := diffFields(todoTrackedFields, todoFieldValues(old), todoFieldValues(updated))

	if len(diffs) == 0 {
		oldSnap, err := snapshot(old)
		if err != nil {
			return err
		}
		newSnap, err := snapshot(updated)
		if err != nil {
			return err
		}
		return tx.Create(&models.TodoAuditLog{
			TodoID:   old.ID,
			Action:   models.AuditActionUpdate,
			OldValue: oldSnap,
			NewValue: newSnap,
			UserID:   userID,
		}).Error
	}

	rows := make([]models.TodoAuditLog, 0, len(diffs))
	for _, d := range diffs {
		rows = append(rows, models.TodoAuditLog{
			TodoID:    old.ID,
			Action:    models.AuditActionUpdate,
			FieldName: strp(d.field),
			OldValue:  d.oldValue,
			NewValue:  d.newValue,
			UserID:    userID,
		})
	}
	return tx.Create(&rows).Error
}

// logTodoToggled writes the fixed complete/uncomplete row with literal
// old/new values, independent of the stored prior state.
func logTodoToggled(tx *gorm.DB, todoID uint64, completed bool, userID string) error {
	action := models.AuditActionComplete
	if !completed {
		action = models.AuditActionUncomplete
	}
	return tx.Create(&models.TodoAuditLog{
		TodoID:    todoID,
		Action:    action,
		FieldName: strp("completed"),
		OldValue:  strp(strconv.FormatBool(!completed)),
		NewValue:  strp(strconv.FormatBool(completed)),
		UserID:    userID,
	}).Error
}
