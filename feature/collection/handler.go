package collection

import (
	"bytes"
	"errors"

	"library-doctor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the library document.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/reconcile", h.HandleReconcile)
	group.Get("/plan", h.HandlePlan)
	group.Get("/integrity", h.HandleIntegrity)
	group.Get("/export", h.HandleExport)
	group.Post("/publish", h.HandlePublish)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleReconcile reconciles the document against the music directory.
// @Summary Reconcile Library
// @Description Compares the library document with the music directory and reports missing, unimported, duplicate and relocatable files.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} collection.Result "Reconciliation Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Reconcile(c.Context())
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandlePlan returns the suggested follow-ups for the current findings.
// @Summary Plan Fixes
// @Description Lists the follow-up actions suggested by a reconciliation.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.Plan(c.Context())
	if err != nil {
		l.Error("Plan generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plan)
}

// HandleIntegrity runs the document checks.
// @Summary Check Document
// @Description Checks declared entry counts, playlist references and track id uniqueness.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} checks.DocumentReport "Document Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/integrity [get]
func (h *Handler) HandleIntegrity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Integrity(c.Context())
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleExport returns the re-encoded document.
// @Summary Export Document
// @Description Re-encodes the library document without changing its content.
// @Tags collection
// @Produce xml
// @Success 200 {string} string "Library document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var buf bytes.Buffer
	if err := h.service.Export(c.Context(), &buf); err != nil {
		l.Error("Export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// HandlePublish uploads the export and report to object storage.
// @Summary Publish Library
// @Description Uploads the exported document and the reconciliation report to object storage.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} collection.PublishResult "Publish Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage Not Configured"
// @Router /collection/publish [post]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Publishing library")

	result, err := h.service.Publish(c.Context())
	if errors.Is(err, ErrNoStorage) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleRefresh drops the cached document.
// @Summary Refresh Document
// @Description Drops the cached library document so the next request reads it again.
// @Tags collection
// @Produce json
// @Success 200 {object} map[string]string "Refreshed"
// @Router /collection/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	h.service.Invalidate()
	return c.JSON(fiber.Map{"status": "refreshed"})
}
