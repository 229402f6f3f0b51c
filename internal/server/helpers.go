package server

import (
	"context"
	"errors"
	"time"

	"chirp/internal/middleware"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const requestTimeout = 10 * time.Second

var statusByCode = map[string]int{
	models.CodeNotFound:           fiber.StatusNotFound,
	models.CodeConflict:           fiber.StatusConflict,
	models.CodePermissionDenied:   fiber.StatusForbidden,
	models.CodeIntegrityViolation: fiber.StatusBadRequest,
	models.CodeInvalidArgument:    fiber.StatusBadRequest,
	models.CodeUnprocessable:      fiber.StatusUnprocessableEntity,
}

// statusFor maps an application error code to its HTTP status.
func statusFor(err error) int {
	if status, ok := statusByCode[models.CodeOf(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// respondWithError writes the standard failure envelope. Only the AppError
// message reaches the client; wrapped driver errors stay in the logs.
func respondWithError(c *fiber.Ctx, err error) error {
	code := models.CodeOf(err)
	message := "Internal server error"

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
	}

	return c.Status(statusFor(err)).JSON(fiber.Map{
		"result":        false,
		"error_type":    code,
		"error_message": message,
	})
}

// respondOK writes the success envelope {result: true, ...fields}.
func respondOK(c *fiber.Ctx, status int, fields fiber.Map) error {
	body := fiber.Map{"result": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = respondWithError(c, models.NewInvalidArgumentError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// requestContext bounds a handler's downstream work.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func caller(c *fiber.Ctx) string {
	return middleware.HandleFrom(c)
}
