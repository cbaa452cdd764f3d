package authValidator

import (
	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
)

// IDToken requires an idToken field in the request body.
func IDToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IDToken string `json:"idToken"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.IDToken == "" {
			return middleware.Error(c, fiber.StatusBadRequest, "ID token is required")
		}

		c.Locals("idToken", reqData.IDToken)
		return c.Next()
	}
}
