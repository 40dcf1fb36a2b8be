package members

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	if data == nil {
		data = map[string]any{}
	}
	return c.Status(status).JSON(Envelope{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// respondError maps the package error taxonomy onto the envelope with
// the matching status code. Unexpected failures surface as a generic 500
// with no diagnostic detail for the client.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return respond(c, fiber.StatusBadRequest, "Validation error occurred", verrs)
	}

	switch {
	case errors.Is(err, ErrDuplicateIdentity):
		return respond(c, fiber.StatusBadRequest, "Email or username already registered", nil)
	case errors.Is(err, ErrDuplicateRank):
		return respond(c, fiber.StatusBadRequest, "Rank already exists", nil)
	case errors.Is(err, ErrInvalidRole):
		return respond(c, fiber.StatusBadRequest, "Invalid role", nil)
	case errors.Is(err, ErrAlreadyApproved):
		return respond(c, fiber.StatusBadRequest, "User is already approved", nil)
	case errors.Is(err, ErrInvalidCredentials):
		return respond(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, ErrInactiveAccount):
		return respond(c, fiber.StatusUnauthorized, "Account is inactive", nil)
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenMalformed), errors.Is(err, ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "Session is expired or invalid", nil)
	case errors.Is(err, ErrForbidden):
		return respond(c, fiber.StatusForbidden, "You are not authorized to perform this action", nil)
	case errors.Is(err, ErrNotFound):
		return respond(c, fiber.StatusNotFound, "Record not found", nil)
	default:
		return respond(c, fiber.StatusInternalServerError, "An error occurred", nil)
	}
}

func respondParseError(c *fiber.Ctx) error {
	return respond(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
}
