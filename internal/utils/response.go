package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeletedResponse acknowledges a successful delete.
type DeletedResponse struct {
	Success bool `json:"success"`
}

// SendJSON writes a JSON payload with the given HTTP status code.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(payload)
}

// SendError writes the error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "internal server error"
	}
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendDeleted acknowledges a delete.
func SendDeleted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(DeletedResponse{Success: true})
}
