package category

import (
	"errors"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDefaultCategory: the fallback category must never be deleted while
	// it is the landing place for orphaned courses.
	ErrDefaultCategory = errors.New("cannot delete the default category")

	// ErrNoFallback: no default category exists, so deletion has nowhere to
	// reassign dependent courses.
	ErrNoFallback = errors.New("default category not found")
)

// seedSet is the initial catalog taxonomy; "Other" is the designated
// fallback.
var seedSet = []models.Category{
	{Name: "Healthcare", Description: "Healthcare-related courses and programs"},
	{Name: "Leadership", Description: "Leadership development programs"},
	{Name: "Newcomer Pathways", Description: "Programs for newcomers and immigrants"},
	{Name: "Other", Description: "Miscellaneous courses", IsDefault: true},
}

// Fallback returns the designated default category.
func Fallback(db *gorm.DB) (*models.Category, error) {
	var cat models.Category
	if err := db.Where("is_default = ?", true).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoFallback
		}
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category after bulk-reassigning its courses to the
// fallback. Reassignment happens before the delete inside one transaction so
// no course is ever left referencing a missing category.
func Delete(db *gorm.DB, categoryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if cat.IsDefault {
			return ErrDefaultCategory
		}

		fallback, err := Fallback(tx)
		if err != nil {
			return err
		}

		err = tx.Model(&courseModels.Course{}).
			Where("category_id = ?", categoryID).
			Update("category_id", fallback.ID).Error
		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(&cat).Error
	})
}

// Seed creates the initial categories if none exist and adopts orphaned
// courses into the fallback. Safe to run at every boot.
func Seed(db *gorm.DB) ([]models.Category, error) {
	var existing int64
	if err := db.Model(&models.Category{}).Count(&existing).Error; err != nil {
		return nil, err
	}

	if existing == 0 {
		cats := make([]models.Category, len(seedSet))
		copy(cats, seedSet)
		if err := db.Create(&cats).Error; err != nil {
			return nil, err
		}
	}

	fallback, err := Fallback(db)
	if err != nil {
		return nil, err
	}

	// Courses created before the taxonomy existed land in the fallback.
	err = db.Model(&courseModels.Course{}).
		Where("category_id IS NULL").
		Update("category_id", fallback.ID).Error
	if err != nil {
		return nil, err
	}

	var all []models.Category
	if err := db.Order("id asc").Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}
