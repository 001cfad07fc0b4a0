package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clubpulse/clubpulse-api/internal/config"
	"github.com/clubpulse/clubpulse-api/internal/handler"
	"github.com/clubpulse/clubpulse-api/internal/middleware"
	"github.com/clubpulse/clubpulse-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	MeetingHandler    *handler.MeetingHandler
	EvaluationHandler *handler.EvaluationHandler
	ReportHandler     *handler.ReportHandler
	LiveHandler       *handler.LiveHandler
	AdminHandler      *handler.AdminHandler
	AuthHandler       *handler.AuthHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/criteria", handler.Criteria())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := []fiber.Handler{jwtMiddleware, middleware.RequireRole("admin")}

	if deps.MeetingHandler != nil {
		meetings := api.Group("/meetings")
		deps.MeetingHandler.Register(meetings, adminOnly...)
		if deps.LiveHandler != nil {
			deps.LiveHandler.Register(meetings)
		}
	}

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations")
		deps.EvaluationHandler.Register(evaluations, middleware.RateLimit("evaluations", 30, time.Minute))
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports")
		deps.ReportHandler.Register(reports)
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/admin/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.AdminHandler != nil {
		admin := app.Group("/api/admin", adminOnly...)
		deps.AdminHandler.Register(admin)
	}
}
