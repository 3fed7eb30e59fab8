package courseRoutes

import (
	courseControllers "lms/controllers/course"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course catalog routes. Browsing the
// catalog requires no account; the admissions form links straight to it.
func SetupCourseRoutes(app *fiber.App) {
	publicGroup := app.Group("/course")

	publicGroup.Get("/list", courseValidators.CourseList(), courseControllers.GetAllCourses)
	publicGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourseDetails)
}
