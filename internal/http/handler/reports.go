package handler

import (
	"github.com/gofiber/fiber/v2"

	"incidentapi/internal/service"
)

type statusRequest struct {
	Status string `json:"status"`
}

// ListReports lists reports newest incident first.
// @Summary List incident reports
// @Tags reports
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Param prisonId query string false "prison filter"
// @Param status query string false "status filter"
// @Param type query string false "type filter"
// @Param source query string false "source filter (DPS or NOMIS)"
// @Success 200 {object} service.ReportListResult
// @Failure 400 {object} errorPayload
// @Router /incident-reports [get]
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := intQuery(c, "limit", 10)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := intQuery(c, "offset", 0)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), service.ListReportsInput{
			PrisonID: c.Query("prisonId"),
			Status:   c.Query("status"),
			Type:     c.Query("type"),
			Source:   c.Query("source"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateReport records a new report raised in this service.
// @Summary Create an incident report
// @Tags reports
// @Accept json
// @Produce json
// @Param body body service.CreateReportInput true "report"
// @Success 201 {object} model.Report
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /incident-reports [post]
func CreateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateReportInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		rep, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rep)
	}
}

// GetReport returns a report with its description addenda.
// @Summary Get an incident report
// @Tags reports
// @Produce json
// @Param id path string true "report id"
// @Success 200 {object} model.Report
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /incident-reports/{id} [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rep, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rep)
	}
}

// @Summary Get an incident report by reference
// @Tags reports
// @Produce json
// @Param reference path string true "report reference"
// @Success 200 {object} model.Report
// @Failure 404 {object} errorPayload
// @Router /incident-reports/reference/{reference} [get]
func GetReportByReference(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rep, err := svc.GetByReference(c.UserContext(), c.Params("reference"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rep)
	}
}

// UpdateReport applies a partial update.
// @Summary Update an incident report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "report id"
// @Param body body service.UpdateReportInput true "fields to change"
// @Success 200 {object} model.Report
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /incident-reports/{id} [patch]
func UpdateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.UpdateReportInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		rep, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(rep)
	}
}

// ChangeReportStatus sets the report status. Repeating the current status is a no-op.
// @Summary Change report status
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "report id"
// @Param body body statusRequest true "new status"
// @Success 200 {object} model.Report
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /incident-reports/{id}/status [put]
func ChangeReportStatus(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req statusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.ChangeStatus(c.UserContext(), id, req.Status)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res.Value())
	}
}

// @Summary Delete an incident report
// @Tags reports
// @Param id path string true "report id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /incident-reports/{id} [delete]
func DeleteReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary Status history of a report
// @Tags reports
// @Produce json
// @Param id path string true "report id"
// @Success 200 {array} model.StatusHistory
// @Failure 404 {object} errorPayload
// @Router /incident-reports/{id}/history [get]
func ReportHistory(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		history, err := svc.History(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(history)
	}
}
