package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/dto"
	"github.com/clubpulse/clubpulse-api/internal/service"
	"github.com/clubpulse/clubpulse-api/internal/utils"
)

// EvaluationHandler wires the evaluation submission and listing endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler creates an evaluation handler instance.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register binds evaluation routes under the provided router group. The
// submitGuard chain (rate limiting) applies to submissions only; listings
// stay unthrottled for admin dashboards.
func (h *EvaluationHandler) Register(router fiber.Router, submitGuard ...fiber.Handler) {
	router.Get("/", h.list)
	router.Post("/", append(submitGuard, h.create)...)
}

func (h *EvaluationHandler) create(c *fiber.Ctx) error {
	var payload dto.EvaluationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluation, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, evaluation)
}

// list returns evaluations, optionally filtered by meeting or speaker.
func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if meetingID, err := parseQueryID(c, "meeting_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid meeting_id")
	} else if meetingID != 0 {
		evaluations, err := h.service.ListByMeeting(ctx, meetingID)
		if err != nil {
			return respondServiceError(c, requestLogger(h.logger, c), err)
		}
		return utils.SendJSON(c, fiber.StatusOK, evaluations)
	}

	if speaker := strings.TrimSpace(c.Query("speaker")); speaker != "" {
		evaluations, err := h.service.ListBySpeaker(ctx, speaker)
		if err != nil {
			return respondServiceError(c, requestLogger(h.logger, c), err)
		}
		return utils.SendJSON(c, fiber.StatusOK, evaluations)
	}

	evaluations, err := h.service.ListAll(ctx)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendJSON(c, fiber.StatusOK, evaluations)
}
