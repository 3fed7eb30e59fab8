package categoryController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	categoryService "lms/services/category"

	"github.com/gofiber/fiber/v2"
)

// GetAllCategories lists the catalog taxonomy. Public.
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// AdminCreateCategory creates a new category
func AdminCreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ?", reqData.Name).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category name already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// AdminUpdateCategory updates name/description. The IsDefault flag is not
// editable over HTTP; the fallback is fixed at seed time.
func AdminUpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	reqData, ok := c.Locals("validatedCategoryUpdate").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if reqData.Name != "" {
		category.Name = reqData.Name
	}
	if reqData.Description != "" {
		category.Description = reqData.Description
	}

	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// AdminDeleteCategory reassigns dependent courses to the fallback category,
// then removes the record.
func AdminDeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	err := categoryService.Delete(database.Database.Db, uint(categoryID))
	switch {
	case err == nil:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
	case errors.Is(err, categoryService.ErrCategoryNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	case errors.Is(err, categoryService.ErrDefaultCategory):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot delete the default category!", nil)
	case errors.Is(err, categoryService.ErrNoFallback):
		return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false, "Default category not found. Cannot delete category.", nil)
	default:
		log.Printf("Error deleting category %d: %v", categoryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}
}

// AdminSeedCategories creates the initial taxonomy if missing.
func AdminSeedCategories(c *fiber.Ctx) error {
	categories, err := categoryService.Seed(database.Database.Db)
	if err != nil {
		log.Printf("Error seeding categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to seed categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Categories seeded successfully!", categories)
}
