package enrollmentController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	enrollmentService "lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// DirectEnroll places a known user straight into a course, bypassing the
// request workflow. Capacity and atomicity rules match acceptance.
func DirectEnroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDirect").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := enrollmentService.EnrollDirect(database.Database.Db, reqData.UserID, reqData.CourseID)
	switch {
	case err == nil:
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User successfully enrolled in course!", user)
	case errors.Is(err, enrollmentService.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	case errors.Is(err, enrollmentService.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, enrollmentService.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is already enrolled in this course!", nil)
	case errors.Is(err, enrollmentService.ErrCapacityFull):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has reached maximum enrollment!", nil)
	default:
		log.Printf("Error enrolling user %d in course %d: %v", reqData.UserID, reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll user!", nil)
	}
}

// DirectUnenroll removes a user from a course and releases the seat.
func DirectUnenroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUnenroll").(*struct {
		UserID   uint `query:"user_id"`
		CourseID uint `query:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := enrollmentService.UnenrollDirect(database.Database.Db, reqData.UserID, reqData.CourseID)
	switch {
	case err == nil:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User successfully unenrolled from course!", user)
	case errors.Is(err, enrollmentService.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	case errors.Is(err, enrollmentService.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, enrollmentService.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is not enrolled in this course!", nil)
	case errors.Is(err, enrollmentService.ErrLedgerCorrupt):
		log.Printf("Integrity fault unenrolling user %d from course %d: %v", reqData.UserID, reqData.CourseID, err)
		go utils.SendIntegrityAlert("unenrollDirect", reqData.CourseID, err.Error())
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment bookkeeping is inconsistent. An operator has been alerted.", nil)
	default:
		log.Printf("Error unenrolling user %d from course %d: %v", reqData.UserID, reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll user!", nil)
	}
}

// GetLedgerAudit runs the counter consistency check on demand.
func GetLedgerAudit(c *fiber.Ctx) error {
	drifts, err := enrollmentService.AuditLedger(database.Database.Db)
	if err != nil {
		log.Printf("Error auditing enrollment ledger: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to audit enrollment ledger!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ledger audit completed!", fiber.Map{
		"consistent": len(drifts) == 0,
		"drifts":     drifts,
	})
}
