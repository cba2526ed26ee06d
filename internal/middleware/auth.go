package middleware

import (
	"strings"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

var issuer *auth.Issuer

// InitAuth wires the token issuer used by the auth middleware.
func InitAuth(i *auth.Issuer) {
	issuer = i
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired enforces a valid access token and stores the actor's user ID
// in c.Locals("userID"). A missing token and an invalid token are both 401
// here; only routes that never call this middleware serve anonymous reads.
func AuthRequired(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	userID, err := issuer.Resolve(token)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves credentials when present but never rejects the
// request: absent or invalid tokens leave the request anonymous. Public read
// routes use this so owners browsing logged-in are still identified.
func OptionalAuth(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Next()
	}

	userID, err := issuer.Resolve(token)
	if err == nil {
		c.Locals("userID", userID)
	}
	return c.Next()
}

// ActorID returns the authenticated actor's user ID from the request, or
// zero for anonymous requests.
func ActorID(c *fiber.Ctx) uint {
	if uid := c.Locals("userID"); uid != nil {
		if id, ok := uid.(uint); ok {
			return id
		}
	}
	return 0
}
