package resource

import (
	"errors"

	"proc-loader/core/host"
	"proc-loader/core/logger"
	"proc-loader/core/proc"
	"proc-loader/core/source"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for resources and procedures.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resource routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/resources", h.HandleGetResource)

	procs := app.Group("/procedures")
	procs.Get("/", h.HandleListProcedures)
	procs.Put("/:name", h.HandlePutProcedure)
	procs.Delete("/:name", h.HandleDeleteProcedure)

	app.Get("/defaults", h.HandleGetDefaults)
	app.Put("/defaults", h.HandlePutDefaults)
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

// HandleGetResource loads the identifier given in the id query parameter.
// Optional ext, loader and default parameters override the proc plugin
// settings for this request.
func (h *Handler) HandleGetResource(c *fiber.Ctx) error {
	id := c.Query("id")
	l := logger.WithRayID(h.service.logger, c)

	value, err := h.service.Load(c.Context(), id, Overrides{
		Ext:     c.Query("ext"),
		Loader:  c.Query("loader"),
		Default: c.Query("default"),
	})
	if err != nil {
		status := statusOf(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Resource load failed", zap.String("id", id), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := present(value)
	if err != nil {
		l.Error("Resource rendering failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": id, "result": result})
}

// HandleListProcedures returns the registered procedure names.
func (h *Handler) HandleListProcedures(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"procedures": h.service.Procedures()})
}

// HandlePutProcedure registers a CEL expression procedure.
func (h *Handler) HandlePutProcedure(c *fiber.Ctx) error {
	name := c.Params("name")
	var body expressionRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.RegisterExpression(name, body.Expression); err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"procedure": name})
}

// HandleDeleteProcedure removes a procedure.
func (h *Handler) HandleDeleteProcedure(c *fiber.Ctx) error {
	name := c.Params("name")
	if !h.service.RemoveProcedure(name) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "procedure not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetDefaults returns the current plugin settings.
func (h *Handler) HandleGetDefaults(c *fiber.Ctx) error {
	return c.JSON(settingsView(h.service.Settings()))
}

// HandlePutDefaults updates the plugin settings.
func (h *Handler) HandlePutDefaults(c *fiber.Ctx) error {
	var body Defaults
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(settingsView(h.service.UpdateDefaults(body)))
}

func settingsView(s proc.Settings) Defaults {
	return Defaults{
		Procedure:      s.Procedure.Name(),
		Ext:            s.Extension,
		Loader:         s.Loader,
		ParamSeparator: s.ParamSeparator,
	}
}

func statusOf(err error) int {
	var httpErr *source.HTTPError
	switch {
	case errors.Is(err, source.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, host.ErrUnknownPlugin):
		return fiber.StatusBadRequest
	case errors.As(err, &httpErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// present converts loaded values into something JSON can encode.
func present(v any) (any, error) {
	switch value := v.(type) {
	case []byte:
		return string(value), nil
	case *goquery.Document:
		return value.Html()
	default:
		return v, nil
	}
}
