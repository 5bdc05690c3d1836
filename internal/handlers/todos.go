// todos.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/cseboard/cse-whiteboard/internal/cache"
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/types"
	"github.com/cseboard/cse-whiteboard/internal/utils"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TodoHandler handles todo and todo-audit routes
type TodoHandler struct {
	DB    *gorm.DB
	Cache *cache.Listings
}

// CreateTodo handles POST /api/todos
// @Summary Create a todo
// @Description Create a todo, optionally linked to a customer and a note
// @Tags Todos
// @Accept json
// @Produce json
// @Param todo body validation.CreateTodoInput true "Todo"
// @Success 201 {object} models.Todo
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	var in validation.CreateTodoInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "todo", "createTodo")
	}

	todo, err := services.CreateTodo(h.DB, userID, &in)
	if err != nil {
		return serviceError(c, err, "todo", "createTodo")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeTodos)
	return utils.SuccessResponse(c, todo, fiber.StatusCreated)
}

// ListTodos handles GET /api/todos?completed=...&customerId=...
// @Summary List todos
// @Description List the user's todos, newest first, with optional completed and customer filters
// @Tags Todos
// @Produce json
// @Param completed query bool false "Filter by completion state"
// @Param customerId query int false "Filter by linked customer"
// @Success 200 {array} models.Todo
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	var filter services.TodoListFilter
	if v := c.Query("completed"); v != "" {
		completed := v == "true" || v == "1"
		filter.Completed = &completed
	}
	if v := c.Query("customerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return serviceError(c, types.Validation("customerId", "invalid customerId"), "todo", "listTodos")
		}
		filter.CustomerID = &id
	}

	unfiltered := filter.Completed == nil && filter.CustomerID == nil
	if unfiltered {
		if payload, ok := h.Cache.Get(c.Context(), userID, cache.ScopeTodos); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(payload)
		}
	}

	todos, err := services.ListTodos(h.DB, userID, filter)
	if err != nil {
		return serviceError(c, err, "todo", "listTodos")
	}

	if unfiltered {
		if payload, err := json.Marshal(todos); err == nil {
			h.Cache.Set(c.Context(), userID, cache.ScopeTodos, payload)
		}
	}
	return utils.SuccessResponse(c, todos, fiber.StatusOK)
}

// UpdateTodo handles PUT /api/todos/:id
// @Summary Update a todo
// @Description Apply a partial update to a todo, auditing changed fields
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body validation.UpdateTodoInput true "Todo"
// @Success 200 {object} models.Todo
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "todo", "updateTodo")
	}

	var in validation.UpdateTodoInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "todo", "updateTodo")
	}

	todo, err := services.UpdateTodo(h.DB, userID, id, &in)
	if err != nil {
		return serviceError(c, err, "todo", "updateTodo")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeTodos)
	return utils.SuccessResponse(c, todo, fiber.StatusOK)
}

// DeleteTodo handles DELETE /api/todos/:id
// @Summary Delete a todo
// @Description Delete a todo; its audit trail goes with it
// @Tags Todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "todo", "deleteTodo")
	}

	if err := services.DeleteTodo(h.DB, userID, id); err != nil {
		return serviceError(c, err, "todo", "deleteTodo")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeTodos)
	return utils.DeletedResponse(c)
}

// ToggleTodo handles POST /api/todos/:id/toggle
// @Summary Toggle a todo
// @Description Flip a todo's completion state
// @Tags Todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} models.Todo
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos/{id}/toggle [post]
func (h *TodoHandler) ToggleTodo(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "todo", "toggleTodo")
	}

	todo, err := services.ToggleTodo(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err, "todo", "toggleTodo")
	}

	h.Cache.Invalidate(c.Context(), userID, cache.ScopeTodos)
	return utils.SuccessResponse(c, todo, fiber.StatusOK)
}

// ListTodoAudit handles GET /api/todos/:id/audit
// @Summary List todo audit rows
// @Description List a todo's audit trail, newest first
// @Tags Audit
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {array} models.TodoAuditLog
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos/{id}/audit [get]
func (h *TodoHandler) ListTodoAudit(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err, "todo", "listTodoAudit")
	}

	logs, err := services.ListTodoAudit(h.DB, userID, id)
	if err != nil {
		return serviceError(c, err, "todo", "listTodoAudit")
	}
	return utils.SuccessResponse(c, logs, fiber.StatusOK)
}

// RecentTodoAudit handles GET /api/todos/audit/recent?limit=...
// @Summary Recent todo activity
// @Description List the user's latest todo audit rows across all todos
// @Tags Audit
// @Produce json
// @Param limit query int false "Row limit (default 20)"
// @Success 200 {array} models.TodoAuditLog
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /todos/audit/recent [get]
func (h *TodoHandler) RecentTodoAudit(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	limit := c.QueryInt("limit", 20)

	logs, err := services.RecentTodoAudit(h.DB, userID, limit)
	if err != nil {
		return serviceError(c, err, "todo", "recentTodoAudit")
	}
	return utils.SuccessResponse(c, logs, fiber.StatusOK)
}
