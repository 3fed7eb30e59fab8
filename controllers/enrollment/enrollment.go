package enrollmentController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentService "lms/services/enrollment"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SubmitEnrollment handles the public admissions form. No authentication:
// applicants may not hold an account; user_id is an optional link.
func SubmitEnrollment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmit").(*enrollmentValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enr, err := enrollmentService.Submit(database.Database.Db, enrollmentService.SubmitInput{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     reqData.Email,
		Phone:     reqData.Phone,

		Country:    reqData.Country,
		City:       reqData.City,
		Address:    reqData.Address,
		PostalCode: reqData.PostalCode,
		Gender:     reqData.Gender,

		ImmigrationStatus:   reqData.ImmigrationStatus,
		CountryOfOrigin:     reqData.CountryOfOrigin,
		ArrivalDate:         reqData.ArrivalDate,
		WorkExperience:      reqData.WorkExperience,
		EducationBackground: reqData.EducationBackground,
		AttendedLinc:        reqData.AttendedLinc,
		AttendedLincDetails: reqData.AttendedLincDetails,
		LanguageCompanion:   reqData.LanguageCompanion,
		DateIntake:          reqData.DateIntake,
		AssessmentDate:      reqData.AssessmentDate,
		CLBListening:        reqData.CLBListening,
		CLBSpeaking:         reqData.CLBSpeaking,
		CLBReading:          reqData.CLBReading,
		CLBWriting:          reqData.CLBWriting,

		SelectedCourseID: reqData.SelectedCourseID,
		SpecialNeeds:     reqData.SpecialNeeds,
		ConsentName:      reqData.ConsentName,
		ConsentDate:      reqData.ConsentDate,

		UserID: reqData.UserID,
	})

	switch {
	case err == nil:
		go utils.SendEnrollmentReceivedEmail(enr.Email, enr.FirstName, enr.SelectedCourse.Title, enr.Reference)
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", enr)
	case errors.Is(err, enrollmentService.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Selected course not found!", nil)
	case errors.Is(err, enrollmentService.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	case errors.Is(err, enrollmentService.ErrDuplicateRequest):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You already have a pending or accepted enrollment for this course!", nil)
	default:
		log.Printf("Error submitting enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit enrollment request!", nil)
	}
}

// GetEnrollments lists enrollment requests with status/user filters.
func GetEnrollments(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
		UserID *uint  `query:"user_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{})
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData.UserID != nil {
		db = db.Where("user_id = ?", *reqData.UserID)
	}

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Preload("SelectedCourse").Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment requests!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment requests fetched successfully!", response)
}

// GetEnrollmentDetails returns one request with applicant and reviewer
// references resolved.
func GetEnrollmentDetails(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enr courseModels.Enrollment
	if err := database.Database.Db.Preload("SelectedCourse").First(&enr, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request fetched successfully!", fiber.Map{
		"enrollment": enr,
		"applicant":  userSummary(enr.UserID),
		"reviewer":   userSummary(enr.ReviewedByID),
	})
}

// DeleteEnrollment is the administrative purge. It bypasses the state
// machine and applies no counter or user-list compensation; rejected or
// stale requests are the expected targets.
func DeleteEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var enr courseModels.Enrollment
	if err := database.Database.Db.First(&enr, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&enr).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrollment request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request deleted successfully!", enr)
}

func userSummary(id *uint) interface{} {
	if id == nil {
		return nil
	}
	var user models.User
	if err := database.Database.Db.First(&user, *id).Error; err != nil {
		return nil
	}
	return fiber.Map{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	}
}
