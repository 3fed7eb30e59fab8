package courseValidator

import (
	"strconv"
	"strings"

	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseControllers.AdminCourseInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validateCourseFields(reqData, true)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", id)

		reqData := new(courseControllers.AdminCourseInput)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validateCourseFields(reqData, false)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func validateCourseFields(reqData *courseControllers.AdminCourseInput, create bool) map[string]string {
	errors := make(map[string]string)

	title := strings.TrimSpace(reqData.Title)
	if create && title == "" {
		errors["title"] = "Title is required!"
	} else if len(title) > 100 {
		errors["title"] = "Title cannot be more than 100 characters!"
	}

	if create && strings.TrimSpace(reqData.Description) == "" {
		errors["description"] = "Description is required!"
	} else if len(strings.TrimSpace(reqData.Description)) > 1000 {
		errors["description"] = "Description cannot be more than 1000 characters!"
	}

	if create && strings.TrimSpace(reqData.Duration) == "" {
		errors["duration"] = "Duration is required!"
	}

	if reqData.Format != "" && !courseModels.ValidFormat(reqData.Format) {
		errors["format"] = "Format must be Virtual, In-Person or Hybrid!"
	}
	if reqData.Status != "" && !courseModels.ValidCourseStatus(reqData.Status) {
		errors["status"] = "Status must be draft, published or archived!"
	}
	if reqData.Price != nil && *reqData.Price < 0 {
		errors["price"] = "Price cannot be negative!"
	}
	if reqData.MaxEnrollment != nil && *reqData.MaxEnrollment < 1 {
		errors["max_enrollment"] = "Max enrollment must be at least 1!"
	}
	if len(strings.TrimSpace(reqData.Instructor)) > 100 {
		errors["instructor"] = "Instructor name cannot be more than 100 characters!"
	}

	return errors
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int  `query:"page"`
			Limit    *int  `query:"limit"`
			Category *uint `query:"category"`
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

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
