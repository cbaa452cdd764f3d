package diagRoutes

import (
	"github.com/gofiber/fiber/v2"

	"lingua/config"
	diagController "lingua/controllers/diag"
	"lingua/store"
)

// SetupDiagRoutes registers the liveness and store-connectivity routes.
func SetupDiagRoutes(app *fiber.App, st store.Store, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/test-firestore", diagController.TestFirestore(st, cfg))
}
