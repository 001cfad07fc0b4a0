package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/service"
	"github.com/clubpulse/clubpulse-api/internal/utils"
)

// AdminHandler wires the aggregation and export endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates an admin handler instance.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register binds admin routes under the provided router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/meetings/:id/summary", h.summary)
	router.Get("/meetings/:id/export.csv", h.exportCSV)
	router.Get("/meetings/:id/export/mail", h.exportMail)
}

func (h *AdminHandler) summary(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	summary, err := h.service.Summary(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, summary)
}

func (h *AdminHandler) exportCSV(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	fileName, data, err := h.service.ExportCSV(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *AdminHandler) exportMail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	export, err := h.service.ExportMail(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, export)
}
