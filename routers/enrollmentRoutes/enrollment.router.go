package enrollmentRoutes

import (
	enrollmentControllers "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentValidators "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up the admissions form and the admin review
// workflow routes.
func SetupEnrollmentRoutes(app *fiber.App) {
	// Public admissions form submission
	publicGroup := app.Group("/enrollment")
	publicGroup.Post("/submit", enrollmentValidators.SubmitEnrollment(), enrollmentControllers.SubmitEnrollment)

	// Admin review workflow
	adminGroup := app.Group("/admin/enrollment", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Get("/list", enrollmentValidators.EnrollmentList(), enrollmentControllers.GetEnrollments)

	// Direct enroll/unenroll, bypassing the review workflow
	adminGroup.Post("/direct", enrollmentValidators.DirectEnrollment(), enrollmentControllers.DirectEnroll)
	adminGroup.Delete("/direct", enrollmentValidators.DirectUnenrollment(), enrollmentControllers.DirectUnenroll)

	adminGroup.Get("/:id", enrollmentValidators.GetEnrollment(), enrollmentControllers.GetEnrollmentDetails)
	adminGroup.Put("/:id/review", enrollmentValidators.ReviewEnrollment(), enrollmentControllers.ReviewEnrollment)
	adminGroup.Delete("/:id", enrollmentValidators.GetEnrollment(), enrollmentControllers.DeleteEnrollment)

	// Capacity-ledger consistency check
	ledgerGroup := app.Group("/admin/ledger", middleware.JWTMiddleware, middleware.AdminOnly)
	ledgerGroup.Get("/audit", enrollmentControllers.GetLedgerAudit)
}
