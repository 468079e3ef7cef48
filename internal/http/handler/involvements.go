package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"incidentapi/internal/service"
)

func involvementIndex(c *fiber.Ctx) (int, bool) {
	i, err := strconv.Atoi(c.Params("index"))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// @Summary Staff involved in a report
// @Tags involvements
// @Produce json
// @Param id path string true "report id"
// @Success 200 {array} model.StaffInvolvement
// @Router /incident-reports/{id}/staff-involved [get]
func ListStaffInvolvements(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := svc.ListStaffInvolvements(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// @Summary Add staff involvement
// @Tags involvements
// @Accept json
// @Produce json
// @Param id path string true "report id"
// @Param body body service.StaffInvolvementInput true "staff involvement"
// @Success 201 {object} model.StaffInvolvement
// @Router /incident-reports/{id}/staff-involved [post]
func AddStaffInvolvement(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.StaffInvolvementInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		added, err := svc.AddStaffInvolvement(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

// @Summary Remove staff involvement
// @Tags involvements
// @Param id path string true "report id"
// @Param index path int true "involvement sequence"
// @Success 204
// @Router /incident-reports/{id}/staff-involved/{index} [delete]
func RemoveStaffInvolvement(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		index, ok := involvementIndex(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
		}
		if err := svc.RemoveStaffInvolvement(c.UserContext(), id, index); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary Prisoners involved in a report
// @Tags involvements
// @Produce json
// @Param id path string true "report id"
// @Success 200 {array} model.PrisonerInvolvement
// @Router /incident-reports/{id}/prisoners-involved [get]
func ListPrisonerInvolvements(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := svc.ListPrisonerInvolvements(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// @Summary Add prisoner involvement
// @Tags involvements
// @Accept json
// @Produce json
// @Param id path string true "report id"
// @Param body body service.PrisonerInvolvementInput true "prisoner involvement"
// @Success 201 {object} model.PrisonerInvolvement
// @Router /incident-reports/{id}/prisoners-involved [post]
func AddPrisonerInvolvement(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.PrisonerInvolvementInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		added, err := svc.AddPrisonerInvolvement(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

// @Summary Remove prisoner involvement
// @Tags involvements
// @Param id path string true "report id"
// @Param index path int true "involvement sequence"
// @Success 204
// @Router /incident-reports/{id}/prisoners-involved/{index} [delete]
func RemovePrisonerInvolvement(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		index, ok := involvementIndex(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
		}
		if err := svc.RemovePrisonerInvolvement(c.UserContext(), id, index); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary Correction requests of a report
// @Tags corrections
// @Produce json
// @Param id path string true "report id"
// @Success 200 {array} model.CorrectionRequest
// @Router /incident-reports/{id}/correction-requests [get]
func ListCorrectionRequests(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := svc.ListCorrectionRequests(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(items)
	}
}

// @Summary Request a correction
// @Tags corrections
// @Accept json
// @Produce json
// @Param id path string true "report id"
// @Param body body service.CorrectionRequestInput true "correction"
// @Success 201 {object} model.CorrectionRequest
// @Router /incident-reports/{id}/correction-requests [post]
func AddCorrectionRequest(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := reportID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.CorrectionRequestInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		added, err := svc.AddCorrectionRequest(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}
