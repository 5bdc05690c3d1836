// note_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services_test

import (
	"errors"
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/validation"
)

func TestAddNoteRequiresOwnedCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	if _, err := services.AddNote(db, "user-2", customer.ID, &validation.AddNoteInput{Note: "intruder"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.CustomerNote{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no notes written, got %d", count)
	}
}

func TestAddNoteWritesSnapshotRow(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	note, err := services.AddNote(db, "user-1", customer.ID, &validation.AddNoteInput{Note: "<p>kickoff call done</p>"})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	var row models.CustomerNoteAuditLog
	if err := db.Where("note_id = ?", note.ID).First(&row).Error; err != nil {
		t.Fatalf("Expected note audit row: %v", err)
	}
	if row.Action != models.AuditActionCreate {
		t.Errorf("Expected create action, got %q", row.Action)
	}
	if row.NewValue == nil {
		t.Error("Expected snapshot in newValue")
	}
}

func TestUpdateNoteAuditsBodyChange(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	note, err := services.AddNote(db, "user-1", customer.ID, &validation.AddNoteInput{Note: "first"})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	if _, err := services.UpdateNote(db, "user-1", note.ID, &validation.UpdateNoteInput{Note: "second"}); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	var row models.CustomerNoteAuditLog
	if err := db.Where("note_id = ? AND action = ?", note.ID, models.AuditActionUpdate).First(&row).Error; err != nil {
		t.Fatalf("Expected update audit row: %v", err)
	}
	if row.FieldName == nil || *row.FieldName != "note" {
		t.Errorf("Expected note field row, got %v", row.FieldName)
	}
	if row.OldValue == nil || *row.OldValue != "first" || row.NewValue == nil || *row.NewValue != "second" {
		t.Errorf("Expected first -> second, got %v -> %v", row.OldValue, row.NewValue)
	}
}

func TestUpdateNoteUnchangedBodyWritesNoRow(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	note, err := services.AddNote(db, "user-1", customer.ID, &validation.AddNoteInput{Note: "same"})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	if _, err := services.UpdateNote(db, "user-1", note.ID, &validation.UpdateNoteInput{Note: "same"}); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	var count int64
	db.Model(&models.CustomerNoteAuditLog{}).
		Where("note_id = ? AND action = ?", note.ID, models.AuditActionUpdate).
		Count(&count)
	if count != 0 {
		t.Errorf("Expected no update row for unchanged body, got %d", count)
	}
}

func TestListNotesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	for _, body := range []string{"one", "two", "three"} {
		if _, err := services.AddNote(db, "user-1", customer.ID, &validation.AddNoteInput{Note: body}); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}

	notes, err := services.ListNotes(db, "user-1", customer.ID)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(notes))
	}
	if notes[0].Note != "three" || notes[2].Note != "one" {
		t.Errorf("Expected newest first, got %q .. %q", notes[0].Note, notes[2].Note)
	}
}
