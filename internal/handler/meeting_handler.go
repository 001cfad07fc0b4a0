package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/service"
	"github.com/clubpulse/clubpulse-api/internal/utils"
)

// MeetingHandler wires the meeting registry endpoints.
type MeetingHandler struct {
	service service.MeetingService
	logger  zerolog.Logger
}

// NewMeetingHandler creates a meeting handler instance.
func NewMeetingHandler(service service.MeetingService, logger zerolog.Logger) *MeetingHandler {
	return &MeetingHandler{
		service: service,
		logger:  logger.With().Str("component", "meeting_handler").Logger(),
	}
}

// Register binds meeting routes under the provided router group. Creating a
// meeting is an organizer action and runs behind the adminGuard chain; reads
// stay public so shared evaluation links work without a login.
func (h *MeetingHandler) Register(router fiber.Router, adminGuard ...fiber.Handler) {
	router.Get("/", h.list)
	router.Post("/", append(adminGuard, h.create)...)
	router.Get("/today", h.listToday)
	router.Get("/:id", h.get)
	router.Get("/:id/share", h.share)
}

func (h *MeetingHandler) list(c *fiber.Ctx) error {
	meetings, err := h.service.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, meetings)
}

func (h *MeetingHandler) listToday(c *fiber.Ctx) error {
	meetings, err := h.service.ListToday(c.UserContext())
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, meetings)
}

func (h *MeetingHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	meeting, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, meeting)
}

func (h *MeetingHandler) create(c *fiber.Ctx) error {
	var payload dto.MeetingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	meeting, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, meeting)
}

func (h *MeetingHandler) share(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting id")
	}

	link, err := h.service.ShareLink(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, link)
}
