package enrollmentValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmitRequest is the admissions form payload.
type SubmitRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`

	Country    string `json:"country"`
	City       string `json:"city"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Gender     string `json:"gender" validate:"required,oneof=Male Female X"`

	ImmigrationStatus   string `json:"immigration_status"`
	CountryOfOrigin     string `json:"country_of_origin"`
	ArrivalDate         string `json:"arrival_date"`
	WorkExperience      string `json:"work_experience"`
	EducationBackground string `json:"education_background"`
	AttendedLinc        string `json:"attended_linc"`
	AttendedLincDetails string `json:"attended_linc_details"`
	LanguageCompanion   string `json:"language_companion"`
	DateIntake          string `json:"date_intake"`
	AssessmentDate      string `json:"assessment_date"`
	CLBListening        string `json:"clb_listening"`
	CLBSpeaking         string `json:"clb_speaking"`
	CLBReading          string `json:"clb_reading"`
	CLBWriting          string `json:"clb_writing"`

	SelectedCourseID uint   `json:"selected_course_id" validate:"required"`
	SpecialNeeds     string `json:"special_needs"`
	ConsentName      string `json:"consent_name" validate:"required"`
	ConsentDate      string `json:"consent_date" validate:"required"`

	UserID *uint `json:"user_id"`
}

// SubmitEnrollment validates the admissions form body.
func SubmitEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Tag() {
				case "required":
					errors[fe.Field()] = fe.Field() + " is required!"
				case "email":
					errors[fe.Field()] = "Invalid email address!"
				case "oneof":
					errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param()
				default:
					errors[fe.Field()] = fe.Field() + " is invalid!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

// ReviewEnrollment validates the :id param and the review body.
func ReviewEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		reqData := new(struct {
			Status     string `json:"status"`
			AdminNotes string `json:"admin_notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		status := courseModels.EnrollmentStatus(reqData.Status)
		if status != courseModels.StatusAccepted && status != courseModels.StatusRejected {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be accepted or rejected!", nil)
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// GetEnrollment validates the :id param.
func GetEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// EnrollmentList validates list filters and pagination.
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
			UserID *uint  `query:"user_id"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != "" && !courseModels.EnrollmentStatus(reqData.Status).Valid() {
			errors["status"] = "Status must be pending, accepted or rejected!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// DirectEnrollment validates the direct enroll/unenroll body.
func DirectEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"user_id"`
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDirect", reqData)
		return c.Next()
	}
}

// DirectUnenrollment validates the unenroll query parameters (DELETE
// requests carry no body).
func DirectUnenrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `query:"user_id"`
			CourseID uint `query:"course_id"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUnenroll", reqData)
		return c.Next()
	}
}
