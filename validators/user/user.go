package userValidator

import (
	"github.com/gofiber/fiber/v2"

	"lingua/middleware"
	"lingua/models"
)

// UpdateProfile parses the profile patch body.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch := new(models.UserPatch)

		if err := c.BodyParser(patch); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		c.Locals("profilePatch", patch)
		return c.Next()
	}
}

// TestResult requires testId, score, and maxScore in the request body.
func TestResult() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TestID   string         `json:"testId"`
			Score    *float64       `json:"score"`
			MaxScore *float64       `json:"maxScore"`
			Answers  map[string]any `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.TestID == "" || reqData.Score == nil || reqData.MaxScore == nil {
			return middleware.Error(c, fiber.StatusBadRequest, "testId, score, and maxScore are required")
		}

		answers := reqData.Answers
		if answers == nil {
			answers = map[string]any{}
		}

		c.Locals("testResult", models.TestResult{
			TestID:   reqData.TestID,
			Score:    *reqData.Score,
			MaxScore: *reqData.MaxScore,
			Answers:  answers,
		})
		return c.Next()
	}
}

// Enroll requires a courseId in the request body.
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID string `json:"courseId"`
			Paid     bool   `json:"paid"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if reqData.CourseID == "" {
			return middleware.Error(c, fiber.StatusBadRequest, "Course ID is required")
		}

		c.Locals("enrollCourseId", reqData.CourseID)
		c.Locals("enrollPaid", reqData.Paid)
		return c.Next()
	}
}
