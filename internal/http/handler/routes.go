package handler

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"incidentapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, reportSvc service.ReportService, syncSvc service.SyncService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	reports := app.Group("/incident-reports")
	reports.Get("/", ListReports(reportSvc))
	reports.Post("/", CreateReport(reportSvc))
	reports.Get("/reference/:reference", GetReportByReference(reportSvc))
	reports.Get("/:id", GetReport(reportSvc))
	reports.Patch("/:id", UpdateReport(reportSvc))
	reports.Delete("/:id", DeleteReport(reportSvc))
	reports.Put("/:id/status", ChangeReportStatus(reportSvc))
	reports.Get("/:id/history", ReportHistory(reportSvc))

	reports.Get("/:id/staff-involved", ListStaffInvolvements(reportSvc))
	reports.Post("/:id/staff-involved", AddStaffInvolvement(reportSvc))
	reports.Delete("/:id/staff-involved/:index", RemoveStaffInvolvement(reportSvc))

	reports.Get("/:id/prisoners-involved", ListPrisonerInvolvements(reportSvc))
	reports.Post("/:id/prisoners-involved", AddPrisonerInvolvement(reportSvc))
	reports.Delete("/:id/prisoners-involved/:index", RemovePrisonerInvolvement(reportSvc))

	reports.Get("/:id/correction-requests", ListCorrectionRequests(reportSvc))
	reports.Post("/:id/correction-requests", AddCorrectionRequest(reportSvc))

	app.Put("/sync/upsert", SyncUpsert(syncSvc))
	app.Post("/sync/nomis/:incidentId", ReconcileIncident(syncSvc))
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

// HealthCheck reports healthy only while the database answers a ping.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || db.PingContext(ctx) != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is up.
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// reportID reads and validates the :id path parameter.
func reportID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
