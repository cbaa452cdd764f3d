package progressValidator

import (
	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/models"
)

// Upsert requires a courseId alongside the progress fields.
func Upsert() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
			models.ProgressUpdate
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.CourseID == "" {
			return middleware.Error(c, fiber.StatusBadRequest, "Course ID is required")
		}

		c.Locals("courseId", reqData.CourseID)
		c.Locals("progressUpdate", reqData.ProgressUpdate)
		return c.Next()
	}
}

// Update parses the progress fields for the by-course route, where the
// course comes from the path.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		upd := new(models.ProgressUpdate)

		if err := c.BodyParser(upd); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		c.Locals("progressUpdate", *upd)
		return c.Next()
	}
}
