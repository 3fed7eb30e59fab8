package categoryRoutes

import (
	categoryControllers "lms/controllers/category"
	"lms/middleware"
	categoryValidators "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up public and admin category routes
func SetupCategoryRoutes(app *fiber.App) {
	publicGroup := app.Group("/category")
	publicGroup.Get("/list", categoryControllers.GetAllCategories)

	adminGroup := app.Group("/admin/category")
	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.AdminOnly, categoryValidators.CreateCategory(), categoryControllers.AdminCreateCategory)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, categoryValidators.UpdateCategory(), categoryControllers.AdminUpdateCategory)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, categoryValidators.CategoryID(), categoryControllers.AdminDeleteCategory)
	adminGroup.Post("/seed", middleware.JWTMiddleware, middleware.AdminOnly, categoryControllers.AdminSeedCategories)
}
