// validation.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report failures under the wire (json) field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// messages maps "<json field>.<constraint>" to the user-visible message.
// Unlisted pairs fall back to a generic message.
var messages = map[string]string{
	"name.required":           "Customer name is required",
	"name.max":                "Name is too long",
	"lastPatchDate.datetime":  "Must be a YYYY-MM-DD date",
	"lastPatchVersion.max":    "Version is too long",
	"mscUrl.url":              "Must be a valid URL",
	"runbookUrl.url":          "Must be a valid URL",
	"snowUrl.url":             "Must be a valid URL",
	"note.required":           "Note cannot be empty",
	"note.max":                "Note is too long",
	"title.required":          "Title is required",
	"title.min":               "Title is required",
	"title.max":               "Title too long",
	"dueDate.datetime":        "Must be a YYYY-MM-DD date",
	"weekEndingDate.required": "Week ending date is required",
	"weekEndingDate.datetime": "Must be a YYYY-MM-DD date",
}

// Struct validates an input struct and returns a structured validation error
// for the first failing constraint, or nil.
func Struct(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return types.Validation("input", "invalid input")
	}

	first := verrs[0]
	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return types.Validation(first.Field(), msg)
	}
	return types.Validation(first.Field(), fmt.Sprintf("failed %q constraint", first.Tag()))
}
