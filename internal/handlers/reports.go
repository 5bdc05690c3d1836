// reports.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package handlers

import (
	"github.com/cseboard/cse-whiteboard/internal/services"
	"github.com/cseboard/cse-whiteboard/internal/utils"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportHandler handles weekly report routes
type ReportHandler struct {
	DB          *gorm.DB
	Summarizer  services.Summarizer
	Concurrency int
}

// WeeklyReport handles POST /api/reports/weekly
// @Summary Generate the weekly report data
// @Description Per-customer notes for the Monday-to-date week ending on the given date, with optional executive summaries
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body validation.WeeklyReportInput true "Week selection"
// @Success 200 {array} services.ReportEntry
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/weekly [post]
func (h *ReportHandler) WeeklyReport(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	var in validation.WeeklyReportInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "report", "weeklyReport")
	}

	entries, err := services.WeeklyReport(c.Context(), h.DB, userID, in.WeekEndingDate, h.Summarizer, h.Concurrency)
	if err != nil {
		return serviceError(c, err, "report", "weeklyReport")
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// WeeklyReportText handles POST /api/reports/weekly/text
// @Summary Generate the weekly report as plain text
// @Description The fixed-width ASCII rendering users paste into email
// @Tags Reports
// @Accept json
// @Produce plain
// @Param report body validation.WeeklyReportInput true "Week selection"
// @Success 200 {string} string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/weekly/text [post]
func (h *ReportHandler) WeeklyReportText(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "whiteboard.authorization.user")
	}

	var in validation.WeeklyReportInput
	if err := parseBody(c, &in); err != nil {
		return serviceError(c, err, "report", "weeklyReportText")
	}

	entries, err := services.WeeklyReport(c.Context(), h.DB, userID, in.WeekEndingDate, h.Summarizer, h.Concurrency)
	if err != nil {
		return serviceError(c, err, "report", "weeklyReportText")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(services.RenderReport(entries, in.WeekEndingDate))
}
