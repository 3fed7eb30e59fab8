package controllers

import (
	"errors"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	categoryService "lms/services/category"

	"github.com/gofiber/fiber/v2"
)

// AdminCourseInput is the create/update payload. CurrentEnrollment is
// deliberately absent: the seat counter belongs to the workflow engine and
// admin edits must never write it.
type AdminCourseInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CategoryID    *uint      `json:"category_id"`
	Duration      string     `json:"duration"`
	Format        string     `json:"format"`
	Instructor    string     `json:"instructor"`
	Price         *float64   `json:"price"`
	MaxEnrollment *int       `json:"max_enrollment"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Prerequisites string     `json:"prerequisites"`
	Status        string     `json:"status"`
}

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*AdminCourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Resolve the category reference at write time: explicit id must exist,
	// absence lands on the fallback.
	categoryID := reqData.CategoryID
	if categoryID != nil {
		if err := db.First(&models.Category{}, *categoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
	} else {
		fallback, err := categoryService.Fallback(db)
		if err != nil {
			if errors.Is(err, categoryService.ErrNoFallback) {
				return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false, "Default category not found!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
		}
		categoryID = &fallback.ID
	}

	course := courseModels.Course{
		Title:         reqData.Title,
		Description:   reqData.Description,
		CategoryID:    categoryID,
		Duration:      reqData.Duration,
		Instructor:    reqData.Instructor,
		Prerequisites: reqData.Prerequisites,
		StartDate:     reqData.StartDate,
		EndDate:       reqData.EndDate,
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	} else {
		course.Status = courseModels.CourseDraft
	}
	if reqData.Format != "" {
		course.Format = reqData.Format
	} else {
		course.Format = courseModels.FormatVirtual
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.MaxEnrollment != nil {
		course.MaxEnrollment = *reqData.MaxEnrollment
	} else {
		course.MaxEnrollment = 30
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*AdminCourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.CategoryID != nil {
		if err := database.Database.Db.First(&models.Category{}, *reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		course.CategoryID = reqData.CategoryID
	}
	if reqData.Duration != "" {
		course.Duration = reqData.Duration
	}
	if reqData.Format != "" {
		course.Format = reqData.Format
	}
	if reqData.Instructor != "" {
		course.Instructor = reqData.Instructor
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.MaxEnrollment != nil {
		// Shrinking below the seats already taken would leave the course in
		// the over-capacity state the ledger audit flags as drift.
		if *reqData.MaxEnrollment < course.CurrentEnrollment {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Max enrollment cannot be below current enrollment!", nil)
		}
		course.MaxEnrollment = *reqData.MaxEnrollment
	}
	if reqData.StartDate != nil {
		course.StartDate = reqData.StartDate
	}
	if reqData.EndDate != nil {
		course.EndDate = reqData.EndDate
	}
	if reqData.Prerequisites != "" {
		course.Prerequisites = reqData.Prerequisites
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses regardless of status
func AdminGetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page     *int  `query:"page"`
		Limit    *int  `query:"limit"`
		Category *uint `query:"category"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{})
	if reqData.Category != nil {
		db = db.Where("category_id = ?", *reqData.Category)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// AdminGetCourseDetails returns one course with its enrollment requests
func AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var requests []courseModels.Enrollment
	database.Database.Db.
		Where("selected_course_id = ?", courseID).
		Order("created_at desc").
		Find(&requests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":              course,
		"enrollment_requests": requests,
	})
}
