package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseController "lingua/controllers/course"
	"lingua/services"
)

// SetupCourseRoutes registers the public course catalog routes.
func SetupCourseRoutes(app *fiber.App, courses *services.CourseService) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", courseController.List(courses))
	courseGroup.Get("/:courseId", courseController.GetByID(courses))
}
