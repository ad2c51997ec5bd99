package webapi

import (
	"errors"
	"log/slog"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/homefin/hearth/internal/auth"
)

// RequestLogging logs every request with method, path, status and duration.
func RequestLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"username", Username(c),
		}
		switch {
		case err != nil || status >= 500:
			slog.Error("Request failed", attrs...)
		case status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}

		return err
	}
}

// RequireAuth validates Bearer tokens and stores the claims on the
// request context for Username to read.
func RequireAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: jwtManager.Secret()},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return DomainError(c, auth.ErrMissingToken)
			}
			return DomainError(c, auth.ErrInvalidToken)
		},
	})
}

// Username extracts the authenticated username from the request, empty
// when unauthenticated.
func Username(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}
