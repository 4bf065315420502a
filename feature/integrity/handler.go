package integrity

import (
	"library-doctor/core/logger"
	"library-doctor/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/document", h.HandleDocumentCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/published", h.HandlePublishedCheck)
	group.Get("/server", h.HandleServerCheck)
}

// HandleIntegrityCheck runs every check and reports each one separately.
// A failing check does not prevent the others from running.
// @Summary Run All Integrity Checks
// @Description Runs the document, structure, published and server checks and reports each one separately.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Integrity Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if docReport, err := h.service.CheckDocument(ctx); err != nil {
		report["document"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["document"] = docReport
	}

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = fiber.Map{"status": "ok", "missing": missing}
	}

	if pubReport, err := h.service.CheckPublished(ctx); err != nil {
		report["published"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["published"] = pubReport
	}

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["server"] = srvReport
	}

	return c.JSON(report)
}

// HandleDocumentCheck runs the document checks.
// @Summary Check Document
// @Description Checks the library document for internal inconsistencies.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.DocumentReport "Document Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/document [get]
func (h *Handler) HandleDocumentCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDocument(c.Context())
	if err != nil {
		l.Error("Document check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.OK() {
		l.Warn("Document integrity issues detected", zap.Int("issues", report.Summary.Issues))
	}
	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes the publish layout (?fix=true).
// @Summary Check Structure
// @Description Checks if the publish folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandlePublishedCheck verifies the latest published objects.
// @Summary Check Published
// @Description Verifies that the latest published export and report exist and parse.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.PublicationReport "Publication Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/published [get]
func (h *Handler) HandlePublishedCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckPublished(c.Context())
	if err != nil {
		l.Error("Published check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleServerCheck checks the history schema.
// @Summary Check Server
// @Description Checks the history table against the expected schema.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
