// customer_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/validation"
)

func updateInputFrom(c *models.Customer) *validation.UpdateCustomerInput {
	in := &validation.UpdateCustomerInput{
		Name:            c.Name,
		Temperament:     c.Temperament,
		Topology:        c.Topology,
		DumbledoreStage: c.DumbledoreStage,
		PatchFrequency:  c.PatchFrequency,
	}
	if c.LastPatchDate != nil {
		in.LastPatchDate = c.LastPatchDate.Format("2006-01-02")
	}
	if c.LastPatchVersion != nil {
		in.LastPatchVersion = *c.LastPatchVersion
	}
	return in
}

func TestCreateCustomerWritesSnapshotRow(t *testing.T) {
	db := setupTestDB(t)

	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	var logs []models.CustomerAuditLog
	if err := db.Where("customer_id = ?", customer.ID).Find(&logs).Error; err != nil {
		t.Fatalf("Failed to load audit rows: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 audit row after create, got %d", len(logs))
	}

	row := logs[0]
	if row.Action != models.AuditActionCreate {
		t.Errorf("Expected create action, got %q", row.Action)
	}
	if row.FieldName != nil {
		t.Errorf("Expected nil fieldName on snapshot row, got %q", *row.FieldName)
	}
	if row.OldValue != nil {
		t.Errorf("Expected nil oldValue on create snapshot, got %q", *row.OldValue)
	}
	if row.NewValue == nil || !strings.Contains(*row.NewValue, `"Acme Corp"`) {
		t.Errorf("Expected snapshot to contain the customer name, got %v", row.NewValue)
	}
	if row.UserID != "user-1" {
		t.Errorf("Expected audit row stamped with actor, got %q", row.UserID)
	}
}

func TestUpdateCustomerAuditsOnlyChangedFields(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	in := updateInputFrom(customer)
	in.DumbledoreStage = 6

	if _, err := services.UpdateCustomer(db, "user-1", customer.ID, in); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var logs []models.CustomerAuditLog
	db.Where("customer_id = ? AND action = ?", customer.ID, models.AuditActionUpdate).Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("Expected exactly 1 update row, got %d", len(logs))
	}

	row := logs[0]
	if row.FieldName == nil || *row.FieldName != "dumbledoreStage" {
		t.Fatalf("Expected dumbledoreStage row, got %v", row.FieldName)
	}
	if row.OldValue == nil || *row.OldValue != "5" {
		t.Errorf("Expected old value \"5\", got %v", row.OldValue)
	}
	if row.NewValue == nil || *row.NewValue != "6" {
		t.Errorf("Expected new value \"6\", got %v", row.NewValue)
	}
}

func TestUpdateCustomerNoChangesWritesNoRows(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	before := countCustomerAudit(t, db, customer.ID)

	if _, err := services.UpdateCustomer(db, "user-1", customer.ID, updateInputFrom(customer)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	after := countCustomerAudit(t, db, customer.ID)
	if after != before {
		t.Errorf("Expected no new audit rows on no-op update, got %d new", after-before)
	}
}

func TestCustomerOwnershipConflation(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	// Another user's customer and a missing customer produce the same error.
	_, errOther := services.GetCustomer(db, "user-2", customer.ID)
	_, errMissing := services.GetCustomer(db, "user-1", 999999)

	if !errors.Is(errOther, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for other user's customer, got %v", errOther)
	}
	if !errors.Is(errMissing, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing customer, got %v", errMissing)
	}
	if errOther.Error() != errMissing.Error() {
		t.Errorf("Expected identical errors, got %q vs %q", errOther, errMissing)
	}
}

func TestUpdateCustomerOtherUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	in := updateInputFrom(customer)
	in.Name = "Hijacked"

	if _, err := services.UpdateCustomer(db, "user-2", customer.ID, in); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// The record is untouched.
	got, err := services.GetCustomer(db, "user-1", customer.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Acme Corp" {
		t.Errorf("Expected name unchanged, got %q", got.Name)
	}
}

func TestArchiveCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	archived, err := services.SetCustomerArchived(db, "user-1", customer.ID, true)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if !archived.Archived {
		t.Error("Expected archived flag set")
	}

	// Default listing hides archived customers.
	active, err := services.ListCustomers(db, "user-1", false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("Expected 0 active customers, got %d", len(active))
	}

	all, err := services.ListCustomers(db, "user-1", true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 customer with includeArchived, got %d", len(all))
	}

	// The archive row uses literal boolean strings.
	var row models.CustomerAuditLog
	if err := db.Where("customer_id = ? AND action = ?", customer.ID, models.AuditActionArchive).First(&row).Error; err != nil {
		t.Fatalf("Expected archive audit row: %v", err)
	}
	if row.FieldName == nil || *row.FieldName != "archived" {
		t.Errorf("Expected archived field row, got %v", row.FieldName)
	}
	if row.OldValue == nil || *row.OldValue != "false" || row.NewValue == nil || *row.NewValue != "true" {
		t.Errorf("Expected false -> true, got %v -> %v", row.OldValue, row.NewValue)
	}
}

func TestListCustomersOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	createTestCustomer(t, db, "user-1", "Zeta Industries")
	createTestCustomer(t, db, "user-1", "Acme Corp")
	createTestCustomer(t, db, "user-2", "Other Tenant")

	customers, err := services.ListCustomers(db, "user-1", false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("Expected 2 customers, got %d", len(customers))
	}
	if customers[0].Name != "Acme Corp" || customers[1].Name != "Zeta Industries" {
		t.Errorf("Expected name order, got %q, %q", customers[0].Name, customers[1].Name)
	}
}

func TestDeleteCustomerCascades(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "user-1", "Acme Corp")

	if _, err := services.AddNote(db, "user-1", customer.ID, &validation.AddNoteInput{Note: "<p>hello</p>"}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if countCustomerAudit(t, db, customer.ID) == 0 {
		t.Fatal("Expected audit rows before delete")
	}

	// The API never deletes customers; the schema still has to take
	// dependents with it when an operator does.
	if err := db.Delete(&models.Customer{}, customer.ID).Error; err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var noteCount int64
	db.Model(&models.CustomerNote{}).Where("customer_id = ?", customer.ID).Count(&noteCount)
	if noteCount != 0 {
		t.Errorf("Expected notes cascade-deleted, %d remain", noteCount)
	}
	if n := countCustomerAudit(t, db, customer.ID); n != 0 {
		t.Errorf("Expected audit rows cascade-deleted, %d remain", n)
	}
}
