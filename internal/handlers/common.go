// common.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/cseboard/cse-whiteboard/internal/utils"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// getUserID extracts the user ID from context (set by auth middleware)
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.Validation(name, fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// serviceError maps a service failure onto the response envelope. ErrNotFound
// covers both missing records and records owned by another user; the body is
// identical either way.
func serviceError(c *fiber.Ctx, err error, entity, op string) error {
	if errors.Is(err, services.ErrNotFound) {
		return utils.NotFoundResponse(c, fmt.Sprintf("%s not found", entity))
	}
	var custom *types.CustomError
	if errors.As(err, &custom) {
		return utils.ErrorResponse(c, custom.Message, custom.Code, custom.Type)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, op)
}

// parseBody unmarshals and validates a JSON request body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.Validation("body", "invalid JSON body")
	}
	return validation.Struct(out)
}
