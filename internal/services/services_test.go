// services_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services_test

import (
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with foreign keys on, so
// cascade and set-null behavior is exercised for real.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.CustomerNote{},
		&models.Todo{},
		&models.CustomerAuditLog{},
		&models.CustomerNoteAuditLog{},
		&models.TodoAuditLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB, userID, name string) *models.Customer {
	t.Helper()

	customer, err := services.CreateCustomer(db, userID, &validation.CreateCustomerInput{
		Name:            name,
		Temperament:     "neutral",
		Topology:        "prod",
		DumbledoreStage: 5,
		PatchFrequency:  "monthly",
	})
	if err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

func createTestTodo(t *testing.T, db *gorm.DB, userID, title string) *models.Todo {
	t.Helper()

	todo, err := services.CreateTodo(db, userID, &validation.CreateTodoInput{
		Title: title,
	})
	if err != nil {
		t.Fatalf("Failed to create todo: %v", err)
	}
	return todo
}

func countCustomerAudit(t *testing.T, db *gorm.DB, customerID uint64) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.CustomerAuditLog{}).Where("customer_id = ?", customerID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count audit rows: %v", err)
	}
	return n
}

func countTodoAudit(t *testing.T, db *gorm.DB, todoID uint64) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.TodoAuditLog{}).Where("todo_id = ?", todoID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count audit rows: %v", err)
	}
	return n
}
