package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	progressController "lingua/controllers/progress"
	userController "lingua/controllers/user"
	"lingua/middleware"
	"lingua/services"
	progressValidator "lingua/validators/progress"
	userValidator "lingua/validators/user"
)

// SetupUserRoutes registers the bearer-protected /users/me surface: profile,
// enrollment, test results, and course progress.
func SetupUserRoutes(app *fiber.App, users *services.UserService, courses *services.CourseService, progress *services.ProgressService, verifier services.TokenVerifier) {
	me := app.Group("/users/me", middleware.RequireAuth(verifier))

	me.Get("/", userController.Me(users))
	me.Put("/", userValidator.UpdateProfile(), userController.UpdateMe(users))
	me.Post("/test-results", userValidator.TestResult(), userController.AddTestResult(users))
	me.Post("/courses", userValidator.Enroll(), userController.Enroll(users, courses))

	me.Get("/progress", progressController.List(users, progress))
	me.Post("/progress", progressValidator.Upsert(), progressController.Upsert(users, progress))
	me.Get("/progress/:courseId", progressController.GetByCourse(users, progress))
	me.Put("/progress/:courseId", progressValidator.Update(), progressController.UpdateByCourse(users, progress))
}
