package authController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/services"
)

// GoogleAuth signs a user in with a Google ID token, creating or linking the
// user record on first sight of the identity.
func GoogleAuth(users *services.UserService, verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idToken := c.Locals("idToken").(string)

		ident, err := verifier.Verify(c.Context(), idToken)
		if err != nil {
			log.Printf("Google auth: token verification failed: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		if ident.Email == "" {
			return middleware.Error(c, fiber.StatusBadRequest, "Email is required")
		}

		user, err := users.Reconcile(c.Context(), ident)
		if err != nil {
			log.Printf("Google auth: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		return middleware.Success(c, fiber.Map{"user": user.APIFormat()})
	}
}

// Login verifies an ID token and returns the already-registered user.
func Login(users *services.UserService, verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idToken := c.Locals("idToken").(string)

		ident, err := verifier.Verify(c.Context(), idToken)
		if err != nil {
			log.Printf("Login: token verification failed: %v", err)
			return middleware.Error(c, fiber.StatusUnauthorized, "Invalid token")
		}

		user, err := users.GetByFirebaseUID(c.Context(), ident.UID)
		if err != nil {
			log.Printf("Login: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return middleware.Error(c, fiber.StatusNotFound, "User not found")
		}

		return middleware.Success(c, fiber.Map{"user": user.APIFormat()})
	}
}

// Register verifies an ID token and creates or links the user record. The
// email and display name come from the identity provider's user record, not
// the token claims, so sign-up methods without profile claims still work.
func Register(users *services.UserService, verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idToken := c.Locals("idToken").(string)

		ident, err := verifier.Verify(c.Context(), idToken)
		if err != nil {
			log.Printf("Register: token verification failed: %v", err)
			return middleware.Error(c, fiber.StatusUnauthorized, "Invalid token")
		}

		user, err := users.GetByFirebaseUID(c.Context(), ident.UID)
		if err != nil {
			log.Printf("Register: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		if user == nil {
			account, err := verifier.LookupUser(c.Context(), ident.UID)
			if err != nil {
				log.Printf("Register: identity lookup failed: %v", err)
				return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
			}
			if account.Email == "" {
				return middleware.Error(c, fiber.StatusBadRequest, "Email is required")
			}

			user, err = users.Reconcile(c.Context(), account)
			if err != nil {
				log.Printf("Register: %v", err)
				return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
			}
		}

		return middleware.Success(c, fiber.Map{"user": user.APIFormat()})
	}
}
