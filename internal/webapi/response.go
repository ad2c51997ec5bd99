// Package webapi exposes the JSON HTTP API: route registration, request
// DTOs, auth middleware and error mapping. Domain errors become HTTP
// status codes here and nowhere else.
package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/auth"
	"github.com/homefin/hearth/internal/domain"
)

// Response is the standard envelope for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

var validate = validator.New()

// SuccessJSON writes the success envelope.
func SuccessJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemJSON writes an RFC 9457 problem response.
func ProblemJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Instance: c.OriginalURL(),
	}
	switch d := detail.(type) {
	case nil:
	case string:
		pd.Detail = d
	default:
		pd.Errors = d
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// DomainError maps a service error onto a problem response. Validation,
// not-found, conflict and authentication conditions each get their own
// status so callers can tell them apart.
func DomainError(c *fiber.Ctx, err error) error {
	return ProblemJSON(c, statusFromError(err), titleFromError(err), err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInactiveAccount):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func titleFromError(err error) string {
	switch statusFromError(err) {
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Already Exists"
	case fiber.StatusUnprocessableEntity:
		return "Validation Failed"
	case fiber.StatusUnauthorized:
		return "Authentication Required"
	case fiber.StatusForbidden:
		return "Forbidden"
	default:
		return "Internal Server Error"
	}
}

// BindAndValidate parses the request body into T and validates it.
// On failure it writes the problem response and returns a non-nil error
// for the handler to return as-is.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(&input); err != nil {
		return nil, ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
