package progressController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/models"
	"lingua/services"
)

// List returns all progress records of the authenticated user.
func List(users *services.UserService, progress *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, users)
		if user == nil {
			return err
		}

		records, err := progress.ListByUser(c.Context(), user.ID)
		if err != nil {
			log.Printf("Get progress: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		shaped := make([]models.ProgressResponse, 0, len(records))
		for i := range records {
			shaped = append(shaped, records[i].APIFormat())
		}
		return middleware.Success(c, fiber.Map{"progress": shaped})
	}
}

// Upsert creates or merges the progress record named by the courseId in the
// request body and returns its fresh state.
func Upsert(users *services.UserService, progress *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, users)
		if user == nil {
			return err
		}

		courseID := c.Locals("courseId").(string)
		upd := c.Locals("progressUpdate").(models.ProgressUpdate)

		return applyUpsert(c, progress, user.ID, courseID, upd)
	}
}

// GetByCourse returns the progress record for one course, or null when the
// user has not started it.
func GetByCourse(users *services.UserService, progress *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, users)
		if user == nil {
			return err
		}

		record, err := progress.GetByUserAndCourse(c.Context(), user.ID, c.Params("courseId"))
		if err != nil {
			log.Printf("Get course progress: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		return middleware.Success(c, fiber.Map{"progress": shapedOrNil(record)})
	}
}

// UpdateByCourse merges progress for the course named in the path.
func UpdateByCourse(users *services.UserService, progress *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveUser(c, users)
		if user == nil {
			return err
		}

		upd := c.Locals("progressUpdate").(models.ProgressUpdate)
		return applyUpsert(c, progress, user.ID, c.Params("courseId"), upd)
	}
}

func applyUpsert(c *fiber.Ctx, progress *services.ProgressService, userID, courseID string, upd models.ProgressUpdate) error {
	if _, err := progress.Upsert(c.Context(), userID, courseID, upd); err != nil {
		log.Printf("Update progress: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	record, err := progress.GetByUserAndCourse(c.Context(), userID, courseID)
	if err != nil {
		log.Printf("Update progress: refetch failed: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return middleware.Success(c, fiber.Map{"progress": shapedOrNil(record)})
}

func shapedOrNil(record *models.Progress) any {
	if record == nil {
		return nil
	}
	return record.APIFormat()
}

func resolveUser(c *fiber.Ctx, users *services.UserService) (*models.User, error) {
	uid := c.Locals("firebaseUid").(string)
	user, err := users.GetByFirebaseUID(c.Context(), uid)
	if err != nil {
		log.Printf("Resolve user: %v", err)
		return nil, middleware.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if user == nil {
		return nil, middleware.Error(c, fiber.StatusNotFound, "User not found")
	}
	return user, nil
}
