// customers.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers

import (
	"encoding/json"

	"github.com/cseboard/cse-whiteboard/internal/cache"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/utils"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CustomerHandler handles customer, note, and audit routes
type CustomerHandler struct {
	DB    *gorm.DB
	Cache *cache.Listings
}

// CreateCustomer handles POST /api/customers
// @Summary Create a customer
// @Description Create a customer record owned by the authenticated user
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body validation.CreateCustomerInput true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	var in validation.CreateCustomerInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "customer", "createCustomer")
	}

	customer, err := services.CreateCustomer(h.DB, userID, &in)
	if err != nil {
		return serviceError(c, err, "customer", "createCustomer")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeCustomers)
	return utils.SuccessResponse(c, customer, fiber.StatusCreated)
}

// ListCustomers handles GET /api/customers?includeArchived=...
// @Summary List customers
// @Description List the user's customers ordered by name; archived are excluded unless requested
// @Tags Customers
// @Produce json
// @Param includeArchived query bool false "Include archived customers"
// @Success 200 {array} models.Customer
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	includeArchived := c.QueryBool("includeArchived", false)

	// Only the default active-only listing is cached; the archived view is
	// rare and always hits the database.
	if !includeArchived {
		if payload, ok := h.Cache.Get(c.Context(), userID, cache.ScopeCustomers); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(payload)
		}
	}

	customers, err := services.ListCustomers(h.DB, userID, includeArchived)
	if err != nil {
		return serviceError(c, err, "customer", "listCustomers")
	}

	if !includeArchived {
		if payload, err := json.Marshal(customers); err == nil {
			h.Cache.Set(c.Context(), userID, cache.ScopeCustomers, payload)
		}
	}
	return utils.SuccessResponse(c, customers, fiber.StatusOK)
}

// GetCustomer handles GET /api/customers/:id
// @Summary Get a customer
// @Description Get one customer owned by the authenticated user
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", "getCustomer")
	}

	customer, err := services.GetCustomer(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err, "customer", "getCustomer")
	}
	return utils.SuccessResponse(c, customer, fiber.StatusOK)
}

// UpdateCustomer handles PUT /api/customers/:id
// @Summary Update a customer
// @Description Apply the full edit form to a customer, auditing each changed field
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body validation.UpdateCustomerInput true "Customer"
// @Success 200 {object} models.Customer
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", "updateCustomer")
	}

	var in validation.UpdateCustomerInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "customer", "updateCustomer")
	}

	customer, err := services.UpdateCustomer(h.DB, userID, id, &in)
	if err != nil {
		return serviceError(c, err, "customer", "updateCustomer")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeCustomers)
	return utils.SuccessResponse(c, customer, fiber.StatusOK)
}

// ArchiveCustomer handles POST /api/customers/:id/archive
// @Summary Archive a customer
// @Description Mark a customer archived; archived customers leave the default listing and the weekly report
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id}/archive [post]
func (h *CustomerHandler) ArchiveCustomer(c *fiber.Ctx) error {
	return h.setArchived(c, true, "archiveCustomer")
}

// UnarchiveCustomer handles POST /api/customers/:id/unarchive
// @Summary Unarchive a customer
// @Description Return an archived customer to the active listing
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id}/unarchive [post]
func (h *CustomerHandler) UnarchiveCustomer(c *fiber.Ctx) error {
	return h.setArchived(c, false, "unarchiveCustomer")
}

func (h *CustomerHandler) setArchived(c *fiber.Ctx, archived bool, op string) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", op)
	}

	customer, err := services.SetCustomerArchived(h.DB, userID, id, archived)
	if err != nil {
		return serviceError(c, err, "customer", op)
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeCustomers)
	return utils.SuccessResponse(c, customer, fiber.StatusOK)
}

// AddNote handles POST /api/customers/:id/notes
// @Summary Add a note
// @Description Attach a rich-text note to a customer
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param note body validation.AddNoteInput true "Note"
// @Success 201 {object} models.CustomerNote
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id}/notes [post]
func (h *CustomerHandler) AddNote(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", "addNote")
	}

	var in validation.AddNoteInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "note", "addNote")
	}

	note, err := services.AddNote(h.DB, userID, id, &in)
	if err != nil {
		return serviceError(c, err, "customer", "addNote")
	}
	return utils.SuccessResponse(c, note, fiber.StatusCreated)
}

// ListNotes handles GET /api/customers/:id/notes
// @Summary List notes
// @Description List a customer's notes, newest first
// @Tags Notes
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} models.CustomerNote
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id}/notes [get]
func (h *CustomerHandler) ListNotes(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", "listNotes")
	}

	notes, err := services.ListNotes(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err, "customer", "listNotes")
	}
	return utils.SuccessResponse(c, notes, fiber.StatusOK)
}

// UpdateNote handles PUT /api/notes/:id
// @Summary Update a note
// @Description Replace a note body, auditing the change
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param note body validation.UpdateNoteInput true "Note"
// @Success 200 {object} models.CustomerNote
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [put]
func (h *CustomerHandler) UpdateNote(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "note", "updateNote")
	}

	var in validation.UpdateNoteInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "note", "updateNote")
	}

	note, err := services.UpdateNote(h.DB, userID, id, &in)
	if err != nil {
		return serviceError(c, err, "note", "updateNote")
	}
	return utils.SuccessResponse(c, note, fiber.StatusOK)
}

// ListCustomerAudit handles GET /api/customers/:id/audit
// @Summary List customer audit rows
// @Description List a customer's audit trail, newest first
// @Tags Audit
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} models.CustomerAuditLog
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customers/{id}/audit [get]
func (h *CustomerHandler) ListCustomerAudit(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "customer", "listCustomerAudit")
	}

	logs, err := services.ListCustomerAudit(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err, "customer", "listCustomerAudit")
	}
	return utils.SuccessResponse(c, logs, fiber.StatusOK)
}
