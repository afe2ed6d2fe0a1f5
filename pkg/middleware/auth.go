// Package middleware holds the fiber middleware shared by the HTTP routes.
package middleware

import (
	"errors"

	"github.com/amirasaad/backoffice/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

const problemJSON = "application/problem+json"

// JwtProtected verifies the bearer token and stores it under "user".
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.Secret),
		},
		ContextKey:   "user",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"type":   "about:blank",
			"title":  "Missing or malformed JWT",
			"status": fiber.StatusBadRequest,
		}, problemJSON)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  "Invalid or expired JWT",
		"status": fiber.StatusUnauthorized,
	}, problemJSON)
}
