package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lingua/services"
)

// RequireAuth is a middleware that verifies the bearer token in the
// Authorization header and stores the attested subject identifier in
// c.Locals("firebaseUid"). Requests without a valid token are rejected
// before any store access happens.
func RequireAuth(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return Error(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		ident, err := verifier.Verify(c.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Printf("Error verifying token: %v", err)
			return Error(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals("firebaseUid", ident.UID)
		return c.Next()
	}
}
