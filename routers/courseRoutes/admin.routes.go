package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/create", courseValidators.CreateCourse(), courseControllers.AdminCreateCourse)
	adminGroup.Get("/list", courseValidators.CourseList(), courseControllers.AdminGetAllCourses)
	adminGroup.Put("/:id", courseValidators.UpdateCourse(), courseControllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", courseValidators.CourseID(), courseControllers.AdminDeleteCourse)
	adminGroup.Get("/:id", courseValidators.CourseID(), courseControllers.AdminGetCourseDetails)
}
