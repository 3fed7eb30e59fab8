package enrollmentController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	enrollmentService "lms/services/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// ReviewEnrollment applies an admin accept/reject decision. The engine runs
// the status write, seat counter and user course list as one transaction;
// any precondition failure leaves nothing applied.
func ReviewEnrollment(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData, ok := c.Locals("validatedReview").(*struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	target := courseModels.EnrollmentStatus(reqData.Status)

	enr, err := enrollmentService.Review(database.Database.Db, uint(enrollmentID), target, reviewerID, reqData.AdminNotes)
	switch {
	case err == nil:
		go utils.SendEnrollmentDecisionEmail(enr.Email, enr.FirstName, enr.SelectedCourse.Title, enr.Status == courseModels.StatusAccepted, enr.AdminNotes)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request updated successfully!", enr)
	case errors.Is(err, enrollmentService.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	case errors.Is(err, enrollmentService.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, enrollmentService.ErrCapacityFull):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has reached maximum enrollment!", nil)
	case errors.Is(err, enrollmentService.ErrInvalidTransition):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status transition!", nil)
	case errors.Is(err, enrollmentService.ErrReviewConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment request was updated by another review. Please retry.", nil)
	case errors.Is(err, enrollmentService.ErrLedgerCorrupt):
		log.Printf("Integrity fault reviewing enrollment %d: %v", enrollmentID, err)
		go utils.SendIntegrityAlert("reviewEnrollment", uint(enrollmentID), err.Error())
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment bookkeeping is inconsistent. An operator has been alerted.", nil)
	default:
		log.Printf("Error reviewing enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment request!", nil)
	}
}
