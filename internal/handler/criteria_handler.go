package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clubpulse/clubpulse-api/internal/utils"
	"github.com/clubpulse/clubpulse-api/pkg/criteria"
)

// Criteria returns a handler serving the fixed evaluation criteria catalog.
func Criteria() fiber.Handler {
	categories := criteria.Categories

	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, fiber.StatusOK, categories)
	}
}
