package history

import (
	"errors"

	"library-doctor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for run history.
type Handler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/history", h.HandleRecent)
}

// HandleRecent returns the latest reconciliation runs.
// The optional limit query parameter bounds the result size.
// @Summary Recent Runs
// @Description Returns the latest recorded reconciliation runs, newest first.
// @Tags history
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {object} map[string]interface{} "Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database Not Configured"
// @Router /history [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	runs, err := Recent(c.Context(), h.db, c.QueryInt("limit", DefaultLimit))
	if err != nil {
		if errors.Is(err, ErrNoDatabase) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"count": len(runs),
		"runs":  runs,
	})
}
