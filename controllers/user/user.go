package userController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/models"
	"lingua/services"
)

// currentUser resolves the authenticated subject to its user record. A nil
// user with a nil error means the 404 response has already been written.
func currentUser(c *fiber.Ctx, users *services.UserService) (*models.User, error) {
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

// Me returns the authenticated user's record.
func Me(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, users)
		if user == nil {
			return err
		}
		return middleware.Success(c, fiber.Map{"user": user.APIFormat()})
	}
}

// UpdateMe applies a profile patch and returns the updated record.
func UpdateMe(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, users)
		if user == nil {
			return err
		}

		patch := c.Locals("profilePatch").(*models.UserPatch)
		if err := users.Update(c.Context(), user.ID, *patch); err != nil {
			log.Printf("Update user: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		updated, err := users.GetByFirebaseUID(c.Context(), user.FirebaseUID)
		if err != nil || updated == nil {
			log.Printf("Update user: refetch failed: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to retrieve updated user")
		}

		return middleware.Success(c, fiber.Map{"user": updated.APIFormat()})
	}
}

// AddTestResult records a test submission and returns the updated user.
func AddTestResult(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, users)
		if user == nil {
			return err
		}

		result := c.Locals("testResult").(models.TestResult)
		if err := users.AddTestResult(c.Context(), user.ID, result); err != nil {
			log.Printf("Add test result: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		updated, err := users.GetByFirebaseUID(c.Context(), user.FirebaseUID)
		if err != nil || updated == nil {
			log.Printf("Add test result: refetch failed: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to retrieve updated user")
		}

		return middleware.Success(c, fiber.Map{"user": updated.APIFormat()})
	}
}

// Enroll adds the authenticated user to a course and bumps the course's
// student counter.
func Enroll(users *services.UserService, courses *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c, users)
		if user == nil {
			return err
		}

		courseID := c.Locals("enrollCourseId").(string)
		paid := c.Locals("enrollPaid").(bool)

		course, err := courses.GetByID(c.Context(), courseID)
		if err != nil {
			log.Printf("Enroll: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		if course == nil {
			return middleware.Error(c, fiber.StatusNotFound, "Course not found")
		}

		alreadyEnrolled := false
		for _, id := range user.EnrolledCourses {
			if id == courseID {
				alreadyEnrolled = true
				break
			}
		}

		if err := users.Enroll(c.Context(), user.ID, courseID, paid); err != nil {
			log.Printf("Enroll: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		if !alreadyEnrolled {
			if err := courses.IncrementStudents(c.Context(), courseID); err != nil {
				log.Printf("Enroll: increment students: %v", err)
				return middleware.Error(c, fiber.StatusInternalServerError, err.Error())
			}
		}

		updated, err := users.GetByFirebaseUID(c.Context(), user.FirebaseUID)
		if err != nil || updated == nil {
			log.Printf("Enroll: refetch failed: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, "Failed to retrieve updated user")
		}

		return middleware.Success(c, fiber.Map{"user": updated.APIFormat()})
	}
}
