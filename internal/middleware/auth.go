// auth.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package middleware

import (
	"fmt"

	"github.com/cseboard/cse-whiteboard/internal/config"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthUser validates the session cookie for the user role and stores the
// authenticated user id in request locals. Every protected handler reads
// the id from there; nothing downstream touches the cookie again.
func AuthUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := c.Cookies("cookie_session")
		if session == "" {
			return types.Unauthorized("Authorizer cookie \"cookie_session\" not found")
		}

		// The client needs a redirect URL, so it is built lazily from the
		// first authenticated request.
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				return types.Unauthorized(fmt.Sprintf("Authorizer unavailable: %v", err))
			}
		}

		userID, err := services.ValidateSession(session, []string{"user"})
		if err != nil {
			return types.Unauthorized(fmt.Sprintf("Invalid session: %v", err))
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
