// handlers_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/handlers"
	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
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

// testAuth fakes the auth middleware by pinning the user id.
func testAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

// setupApp wires the API routes with a fixed user and a nil (disabled) cache.
func setupApp(db *gorm.DB, userID string) *fiber.App {
	app := fiber.New()
	app.Use(testAuth(userID))

	customerHandler := &handlers.CustomerHandler{DB: db}
	todoHandler := &handlers.TodoHandler{DB: db}
	reportHandler := &handlers.ReportHandler{DB: db}

	app.Post("/api/customers", customerHandler.CreateCustomer)
	app.Get("/api/customers", customerHandler.ListCustomers)
	app.Get("/api/customers/:id", customerHandler.GetCustomer)
	app.Put("/api/customers/:id", customerHandler.UpdateCustomer)
	app.Post("/api/customers/:id/archive", customerHandler.ArchiveCustomer)
	app.Post("/api/customers/:id/notes", customerHandler.AddNote)
	app.Get("/api/customers/:id/notes", customerHandler.ListNotes)
	app.Get("/api/customers/:id/audit", customerHandler.ListCustomerAudit)
	app.Put("/api/notes/:id", customerHandler.UpdateNote)

	app.Post("/api/todos", todoHandler.CreateTodo)
	app.Get("/api/todos", todoHandler.ListTodos)
	app.Get("/api/todos/audit/recent", todoHandler.RecentTodoAudit)
	app.Put("/api/todos/:id", todoHandler.UpdateTodo)
	app.Delete("/api/todos/:id", todoHandler.DeleteTodo)
	app.Post("/api/todos/:id/toggle", todoHandler.ToggleTodo)
	app.Get("/api/todos/:id/audit", todoHandler.ListTodoAudit)

	app.Post("/api/reports/weekly", reportHandler.WeeklyReport)
	app.Post("/api/reports/weekly/text", reportHandler.WeeklyReportText)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return resp.StatusCode, raw
}

func TestCreateAndGetCustomer(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	status, raw := doJSON(t, app, "POST", "/api/customers", map[string]interface{}{
		"name":     "Acme Corp",
		"topology": "prod",
	})
	if status != 201 {
		t.Fatalf("Expected 201, got %d: %s", status, raw)
	}

	var created models.Customer
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if created.Name != "Acme Corp" || created.Topology != "prod" {
		t.Errorf("Unexpected customer: %+v", created)
	}
	// Defaults applied where the form omitted values.
	if created.Temperament != "neutral" || created.DumbledoreStage != 1 {
		t.Errorf("Expected defaults, got %+v", created)
	}

	status, raw = doJSON(t, app, "GET", "/api/customers/1", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, raw)
	}
}

func TestListCustomersIncludeArchivedParam(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	for _, name := range []string{"Active Co", "Dormant Co"} {
		status, raw := doJSON(t, app, "POST", "/api/customers", map[string]interface{}{
			"name": name,
		})
		if status != 201 {
			t.Fatalf("Expected 201, got %d: %s", status, raw)
		}
	}
	if status, raw := doJSON(t, app, "POST", "/api/customers/2/archive", nil); status != 200 {
		t.Fatalf("Expected 200 archiving, got %d: %s", status, raw)
	}

	status, raw := doJSON(t, app, "GET", "/api/customers", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, raw)
	}
	var listed []models.Customer
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Active Co" {
		t.Fatalf("Expected only the active customer, got %+v", listed)
	}

	status, raw = doJSON(t, app, "GET", "/api/customers?includeArchived=true", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, raw)
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected both customers with includeArchived, got %+v", listed)
	}
}

func TestCreateCustomerValidationEnvelope(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	status, raw := doJSON(t, app, "POST", "/api/customers", map[string]interface{}{})
	if status != 400 {
		t.Fatalf("Expected 400, got %d", status)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if envelope["ok"] != false {
		t.Error("Expected ok=false in error envelope")
	}
	if envelope["message"] != "name: Customer name is required" {
		t.Errorf("Unexpected message: %v", envelope["message"])
	}
	if envelope["type"] != "whiteboard.validation" {
		t.Errorf("Unexpected type: %v", envelope["type"])
	}
}

func TestCrossTenantReadsAreNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := setupApp(db, "user-1")
	intruder := setupApp(db, "user-2")

	status, _ := doJSON(t, owner, "POST", "/api/customers", map[string]interface{}{"name": "Acme Corp"})
	if status != 201 {
		t.Fatalf("Expected 201, got %d", status)
	}

	// Another tenant and a missing id produce byte-identical bodies apart
	// from the url field.
	statusOther, rawOther := doJSON(t, intruder, "GET", "/api/customers/1", nil)
	statusMissing, rawMissing := doJSON(t, intruder, "GET", "/api/customers/999", nil)
	if statusOther != 404 || statusMissing != 404 {
		t.Fatalf("Expected 404s, got %d and %d", statusOther, statusMissing)
	}

	var other, missing map[string]interface{}
	if err := json.Unmarshal(rawOther, &other); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if err := json.Unmarshal(rawMissing, &missing); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if other["message"] != missing["message"] || other["message"] != "customer not found" {
		t.Errorf("Expected identical messages, got %v and %v", other["message"], missing["message"])
	}
}

func TestTodoLifecycleOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	status, raw := doJSON(t, app, "POST", "/api/todos", map[string]interface{}{
		"title": "call customer",
	})
	if status != 201 {
		t.Fatalf("Expected 201, got %d: %s", status, raw)
	}
	var todo models.Todo
	if err := json.Unmarshal(raw, &todo); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if todo.Priority != "medium" {
		t.Errorf("Expected medium default, got %q", todo.Priority)
	}

	// Ids can arrive as strings from forms.
	status, raw = doJSON(t, app, "POST", "/api/todos", map[string]interface{}{
		"title":      "linked task",
		"customerId": "0",
	})
	if status != 400 {
		t.Fatalf("Expected 400 for zero customerId, got %d: %s", status, raw)
	}

	status, _ = doJSON(t, app, "POST", "/api/todos/1/toggle", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}

	status, raw = doJSON(t, app, "GET", "/api/todos?completed=true", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	var todos []models.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(todos) != 1 || !todos[0].Completed {
		t.Errorf("Expected 1 completed todo, got %d", len(todos))
	}

	status, raw = doJSON(t, app, "DELETE", "/api/todos/1", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if envelope["ok"] != true {
		t.Errorf("Expected ok=true, got %v", envelope["ok"])
	}

	status, _ = doJSON(t, app, "GET", "/api/todos/1/audit", nil)
	if status != 404 {
		t.Errorf("Expected 404 after delete, got %d", status)
	}
}

func TestNotesOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	status, _ := doJSON(t, app, "POST", "/api/customers", map[string]interface{}{"name": "Acme Corp"})
	if status != 201 {
		t.Fatalf("Expected 201, got %d", status)
	}

	status, raw := doJSON(t, app, "POST", "/api/customers/1/notes", map[string]interface{}{
		"note": "<p>kickoff done</p>",
	})
	if status != 201 {
		t.Fatalf("Expected 201, got %d: %s", status, raw)
	}

	status, raw = doJSON(t, app, "PUT", "/api/notes/1", map[string]interface{}{
		"note": "<p>kickoff done, follow-up scheduled</p>",
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, raw)
	}

	status, raw = doJSON(t, app, "GET", "/api/customers/1/audit", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	var logs []models.CustomerAuditLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	// Only the customer's own create row; note edits live in their own log.
	if len(logs) != 1 {
		t.Errorf("Expected 1 customer audit row, got %d", len(logs))
	}
}

func TestWeeklyReportTextOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db, "user-1")

	status, _ := doJSON(t, app, "POST", "/api/customers", map[string]interface{}{"name": "Acme Corp"})
	if status != 201 {
		t.Fatalf("Expected 201, got %d", status)
	}

	status, raw := doJSON(t, app, "POST", "/api/reports/weekly/text", map[string]interface{}{
		"weekEndingDate": "2024-01-14",
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, raw)
	}
	text := string(raw)
	if !bytes.Contains(raw, []byte("WEEKLY CUSTOMER REPORT")) || !bytes.Contains(raw, []byte("CUSTOMER: Acme Corp")) {
		t.Errorf("Unexpected report text: %s", text)
	}

	status, raw = doJSON(t, app, "POST", "/api/reports/weekly", map[string]interface{}{
		"weekEndingDate": "bad",
	})
	if status != 400 {
		t.Fatalf("Expected 400, got %d: %s", status, raw)
	}
}
