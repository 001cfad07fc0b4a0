package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/service"
	"github.com/clubpulse/clubpulse-api/internal/utils"
)

// ReportHandler wires the functionary report endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a report handler instance.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register binds report routes under the provided router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/:meetingId", h.allByMeeting)
	router.Post("/:meetingId", h.create)
	router.Put("/:kind/:id", h.update)
	router.Delete("/:kind/:id", h.delete)
}

func (h *ReportHandler) allByMeeting(c *fiber.Ctx) error {
	meetingID, err := parseIDParam(c, "meetingId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	reports, err := h.service.AllByMeeting(c.UserContext(), meetingID)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, reports)
}

func (h *ReportHandler) create(c *fiber.Ctx) error {
	meetingID, err := parseIDParam(c, "meetingId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	var payload dto.ReportSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.Create(c.UserContext(), meetingID, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, report)
}

func (h *ReportHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid report id")
	}

	var payload dto.ReportSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.Update(c.UserContext(), c.Params("kind"), id, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, report)
}

func (h *ReportHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid report id")
	}

	if err := h.service.Delete(c.UserContext(), c.Params("kind"), id); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendDeleted(c)
}
