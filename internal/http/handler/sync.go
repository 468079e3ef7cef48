package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"incidentapi/internal/nomis"
	"incidentapi/internal/service"
)

func syncResponse(c *fiber.Ctx, res *service.SyncResult) error {
	if res.Created {
		return c.Status(fiber.StatusCreated).JSON(res)
	}
	return c.JSON(res)
}

// SyncUpsert applies an incident pushed from NOMIS.
// @Summary Upsert a report from a NOMIS incident
// @Tags sync
// @Accept json
// @Produce json
// @Param body body nomis.IncidentResponse true "NOMIS incident"
// @Success 200 {object} service.SyncResult
// @Success 201 {object} service.SyncResult
// @Failure 400 {object} errorPayload
// @Router /sync/upsert [put]
func SyncUpsert(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in nomis.IncidentResponse
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.SyncFromNomis(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return syncResponse(c, res)
	}
}

// ReconcileIncident pulls an incident from NOMIS and syncs it.
// @Summary Reconcile a report with NOMIS
// @Tags sync
// @Produce json
// @Param incidentId path int true "NOMIS incident id"
// @Success 200 {object} service.SyncResult
// @Success 201 {object} service.SyncResult
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /sync/nomis/{incidentId} [post]
func ReconcileIncident(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		incidentID, err := strconv.ParseInt(c.Params("incidentId"), 10, 64)
		if err != nil || incidentID <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INCIDENT_ID", "invalid incident id")
		}
		res, err := svc.ReconcileFromNomis(c.UserContext(), incidentID)
		if err != nil {
			return serviceError(c, err)
		}
		return syncResponse(c, res)
	}
}
