package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/models"
	"lingua/services"
)

// List returns the whole course catalog.
func List(courses *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := courses.List(c.Context())
		if err != nil {
			log.Printf("Get courses: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		shaped := make([]models.CourseResponse, 0, len(all))
		for i := range all {
			shaped = append(shaped, all[i].APIFormat())
		}
		return middleware.Success(c, fiber.Map{"courses": shaped})
	}
}

// GetByID returns a single course.
func GetByID(courses *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		course, err := courses.GetByID(c.Context(), c.Params("courseId"))
		if err != nil {
			log.Printf("Get course: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		if course == nil {
			return middleware.Error(c, fiber.StatusNotFound, "Course not found")
		}

		return middleware.Success(c, fiber.Map{"course": course.APIFormat()})
	}
}
