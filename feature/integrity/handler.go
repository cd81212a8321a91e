package integrity

import (
	"errors"

	"proc-loader/core/logger"

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
	group.Get("/source", h.HandleSourceCheck)
	group.Post("/publish", h.HandlePublish)
}

type publishRequest struct {
	IDs []string `json:"ids"`
}

// HandleIntegrityCheck checks the source and resolves the identifiers given
// as repeated id query parameters, or the configured ones.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering integrity checks")

	var ids []string
	for _, v := range c.Context().QueryArgs().PeekMulti("id") {
		ids = append(ids, string(v))
	}

	src := h.service.CheckSource(c.Context())
	resources := h.service.CheckResources(c.Context(), ids)

	status := fiber.StatusOK
	if src.Status == "error" || !resources.OK() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"source":    src,
		"resources": resources,
	})
}

// HandleSourceCheck checks only the source.
func (h *Handler) HandleSourceCheck(c *fiber.Ctx) error {
	report := h.service.CheckSource(c.Context())
	if report.Status == "error" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandlePublish renders identifiers and uploads them to the bucket.
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body publishRequest
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ids are required"})
	}

	keys, err := h.service.Publish(c.Context(), body.IDs)
	if err != nil {
		if errors.Is(err, ErrNoStorage) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Publish failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "published", "keys": keys})
}
