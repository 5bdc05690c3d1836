// health.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers

import (
	"github.com/cseboard/cse-whiteboard/internal/cache"
	"github.com/cseboard/cse-whiteboard/internal/config"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health and identity routes
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Listings
}

// Health handles GET /health
// @Summary Service health
// @Description Check the database, Authorizer, cache, and summarizer
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.Context(), h.Config, h.DB, h.Cache)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// Whoami handles GET /api/whoami
// @Summary Authenticated identity
// @Description Return the user id the session resolves to
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /whoami [get]
func (h *HealthHandler) Whoami(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"userId": userID})
}
