// validation_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package validation_test

import (
	"errors"
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/cseboard/cse-whiteboard/internal/validation"
)

func validationErr(t *testing.T, err error) *types.CustomError {
	t.Helper()

	if err == nil {
		t.Fatal("Expected a validation error")
	}
	var custom *types.CustomError
	if !errors.As(err, &custom) {
		t.Fatalf("Expected CustomError, got %T", err)
	}
	if custom.Code != 400 {
		t.Errorf("Expected 400, got %d", custom.Code)
	}
	return custom
}

func TestCreateCustomerInputValidation(t *testing.T) {
	err := validation.Struct(&validation.CreateCustomerInput{})
	custom := validationErr(t, err)
	if custom.Message != "name: Customer name is required" {
		t.Errorf("Unexpected message: %q", custom.Message)
	}

	err = validation.Struct(&validation.CreateCustomerInput{Name: "Acme", Temperament: "ecstatic"})
	validationErr(t, err)

	err = validation.Struct(&validation.CreateCustomerInput{Name: "Acme", LastPatchDate: "01/15/2024"})
	validationErr(t, err)

	err = validation.Struct(&validation.CreateCustomerInput{Name: "Acme", MscURL: "not a url"})
	custom = validationErr(t, err)
	if custom.Message != "mscUrl: Must be a valid URL" {
		t.Errorf("Unexpected message: %q", custom.Message)
	}

	if err := validation.Struct(&validation.CreateCustomerInput{Name: "Acme"}); err != nil {
		t.Errorf("Expected minimal input to pass, got %v", err)
	}
	if err := validation.Struct(&validation.CreateCustomerInput{
		Name:            "Acme",
		LastPatchDate:   "2024-01-15",
		Temperament:     "happy",
		Topology:        "prod",
		DumbledoreStage: 9,
		PatchFrequency:  "quarterly",
		CloudManager:    "active",
		Products:        []string{"core", "analytics"},
		MscURL:          "https://msc.example.com/acme",
	}); err != nil {
		t.Errorf("Expected full input to pass, got %v", err)
	}
}

func TestCreateCustomerDefaults(t *testing.T) {
	in := &validation.CreateCustomerInput{Name: "Acme"}
	in.ApplyDefaults()

	if in.Temperament != "neutral" || in.Topology != "dev" || in.DumbledoreStage != 1 || in.PatchFrequency != "monthly" {
		t.Errorf("Unexpected defaults: %+v", in)
	}
}

func TestUpdateCustomerInputRequiresEnums(t *testing.T) {
	// The edit form posts the full record; enums are not optional here.
	err := validation.Struct(&validation.UpdateCustomerInput{Name: "Acme"})
	validationErr(t, err)

	if err := validation.Struct(&validation.UpdateCustomerInput{
		Name:            "Acme",
		Temperament:     "neutral",
		Topology:        "dev",
		DumbledoreStage: 1,
		PatchFrequency:  "monthly",
	}); err != nil {
		t.Errorf("Expected valid input to pass, got %v", err)
	}
}

func TestNoteInputValidation(t *testing.T) {
	custom := validationErr(t, validation.Struct(&validation.AddNoteInput{}))
	if custom.Message != "note: Note cannot be empty" {
		t.Errorf("Unexpected message: %q", custom.Message)
	}

	if err := validation.Struct(&validation.AddNoteInput{Note: "<p>fine</p>"}); err != nil {
		t.Errorf("Expected note to pass, got %v", err)
	}
}

func TestCreateTodoInputValidation(t *testing.T) {
	custom := validationErr(t, validation.Struct(&validation.CreateTodoInput{}))
	if custom.Message != "title: Title is required" {
		t.Errorf("Unexpected message: %q", custom.Message)
	}

	validationErr(t, validation.Struct(&validation.CreateTodoInput{Title: "x", Priority: "urgent"}))
	validationErr(t, validation.Struct(&validation.CreateTodoInput{Title: "x", DueDate: "tomorrow"}))

	in := &validation.CreateTodoInput{Title: "x"}
	if err := validation.Struct(in); err != nil {
		t.Errorf("Expected minimal todo to pass, got %v", err)
	}
	in.ApplyDefaults()
	if in.Priority != "medium" {
		t.Errorf("Expected medium default, got %q", in.Priority)
	}
}

func TestUpdateTodoInputValidation(t *testing.T) {
	empty := ""
	validationErr(t, validation.Struct(&validation.UpdateTodoInput{Title: &empty}))

	// Nil fields are untouched, so an empty update is valid.
	if err := validation.Struct(&validation.UpdateTodoInput{}); err != nil {
		t.Errorf("Expected empty update to pass, got %v", err)
	}
}

func TestWeeklyReportInputValidation(t *testing.T) {
	custom := validationErr(t, validation.Struct(&validation.WeeklyReportInput{}))
	if custom.Message != "weekEndingDate: Week ending date is required" {
		t.Errorf("Unexpected message: %q", custom.Message)
	}

	validationErr(t, validation.Struct(&validation.WeeklyReportInput{WeekEndingDate: "Jan 14"}))

	if err := validation.Struct(&validation.WeeklyReportInput{WeekEndingDate: "2024-01-14"}); err != nil {
		t.Errorf("Expected date to pass, got %v", err)
	}
}
