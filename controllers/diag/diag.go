package diagController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lingua/config"
	"lingua/database"
	"lingua/store"
)

// TestFirestore probes store connectivity: it attempts a read of the users
// collection, falls back to a write-then-delete probe document, and reports
// which of the two succeeded. Diagnostic only.
func TestFirestore(st store.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, readErr := st.FindOne(c.Context(), database.CollectionUsers)
		if readErr == nil {
			usersCount := 0
			if snap != nil {
				usersCount = 1
			}
			return c.JSON(fiber.Map{
				"success":    true,
				"message":    "Firestore connection successful",
				"usersCount": usersCount,
				"projectId":  cfg.FirebaseProjectID,
				"test":       "read_collection",
			})
		}

		probeID, writeErr := st.Insert(c.Context(), "test", map[string]any{
			"test":  true,
			"probe": uuid.NewString(),
		})
		if writeErr == nil {
			_ = st.Delete(c.Context(), "test", probeID)
			return c.JSON(fiber.Map{
				"success":   true,
				"message":   "Firestore write successful, but read failed",
				"projectId": cfg.FirebaseProjectID,
				"test":      "write_success_read_failed",
				"error":     readErr.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":    false,
			"error":      "Both read and write failed",
			"readError":  readErr.Error(),
			"writeError": writeErr.Error(),
			"projectId":  cfg.FirebaseProjectID,
		})
	}
}
