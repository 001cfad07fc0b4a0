package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/clubpulse/clubpulse-api/internal/middleware"
	"github.com/clubpulse/clubpulse-api/internal/observability"
	"github.com/clubpulse/clubpulse-api/internal/service"
)

// LiveHandler wires the per-meeting live feed websocket.
type LiveHandler struct {
	feed     *service.LiveFeed
	meetings service.MeetingService
	logger   zerolog.Logger
}

// NewLiveHandler creates a live feed handler instance.
func NewLiveHandler(feed *service.LiveFeed, meetings service.MeetingService, logger zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		feed:     feed,
		meetings: meetings,
		logger:   logger.With().Str("component", "live_handler").Logger(),
	}
}

// Register binds the live feed route under the provided router group.
func (h *LiveHandler) Register(router fiber.Router) {
	router.Use("/:id/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/:id/live", websocket.New(h.handleConnection))
}

func (h *LiveHandler) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	meetingID, err := parseConnMeetingID(conn)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid meeting id"))
		return
	}

	ctx, _ := conn.Locals("request_ctx").(context.Context)
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := h.meetings.Get(ctx, meetingID); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "meeting not found"))
		return
	}

	events := h.feed.Subscribe(meetingID)
	defer h.feed.Unsubscribe(meetingID, events)

	observability.LiveFeedSubscribers().Inc()
	defer observability.LiveFeedSubscribers().Dec()

	h.logger.Info().Uint("meeting_id", meetingID).Msg("live feed connected")
	defer h.logger.Info().Uint("meeting_id", meetingID).Msg("live feed disconnected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func parseConnMeetingID(conn *websocket.Conn) (uint, error) {
	raw := strings.TrimSpace(conn.Params("id"))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(parsed), nil
}
