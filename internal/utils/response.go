package utils

import (
	"time"

	"github.com/docuchat/docuchat/internal/types"
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, string(types.KindNotFound))
}

// ServiceErrorResponse maps a kind-tagged service error onto the HTTP status
// taxonomy and sends the standard envelope.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	kind := types.KindOf(err)
	status := fiber.StatusInternalServerError

	switch kind {
	case types.KindNotFound:
		status = fiber.StatusNotFound
	case types.KindDuplicateName, types.KindValidation:
		status = fiber.StatusBadRequest
	case types.KindIndexNotReady:
		status = fiber.StatusConflict
	case types.KindIngestion, types.KindQueryExecution, types.KindInternal:
		status = fiber.StatusInternalServerError
	}

	return ErrorResponse(c, types.MessageOf(err), status, string(kind))
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}
