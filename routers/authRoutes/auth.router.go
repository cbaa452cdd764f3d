package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "lingua/controllers/auth"
	"lingua/services"
	authValidator "lingua/validators/auth"
)

// SetupAuthRoutes registers the sign-in and registration routes. The
// credential travels in the request body, so none of these carry the bearer
// middleware.
func SetupAuthRoutes(app *fiber.App, users *services.UserService, verifier services.TokenVerifier) {
	authGroup := app.Group("/auth")

	authGroup.Post("/google", authValidator.IDToken(), authController.GoogleAuth(users, verifier))
	authGroup.Post("/login", authValidator.IDToken(), authController.Login(users, verifier))
	authGroup.Post("/register", authValidator.IDToken(), authController.Register(users, verifier))
}
