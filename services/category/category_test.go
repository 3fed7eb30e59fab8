package category

import (
	"fmt"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&courseModels.Course{},
		&courseModels.Enrollment{},
	))
	return db
}

func TestSeedCreatesTaxonomy(t *testing.T) {
	db := newTestDB(t)

	cats, err := Seed(db)
	require.NoError(t, err)
	require.Len(t, cats, 4)

	fallback, err := Fallback(db)
	require.NoError(t, err)
	assert.Equal(t, "Other", fallback.Name)

	// Seeding again must not duplicate anything
	cats, err = Seed(db)
	require.NoError(t, err)
	assert.Len(t, cats, 4)
}

func TestSeedAdoptsOrphanedCourses(t *testing.T) {
	db := newTestDB(t)

	orphan := courseModels.Course{Title: "Orphan", Duration: "4 weeks", MaxEnrollment: 10}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := Seed(db)
	require.NoError(t, err)

	fallback, err := Fallback(db)
	require.NoError(t, err)

	var reloaded courseModels.Course
	require.NoError(t, db.First(&reloaded, orphan.ID).Error)
	require.NotNil(t, reloaded.CategoryID)
	assert.Equal(t, fallback.ID, *reloaded.CategoryID)
}

func TestDeleteReassignsCoursesToFallback(t *testing.T) {
	db := newTestDB(t)

	_, err := Seed(db)
	require.NoError(t, err)

	var healthcare models.Category
	require.NoError(t, db.Where("name = ?", "Healthcare").First(&healthcare).Error)

	for i := 0; i < 3; i++ {
		crs := courseModels.Course{
			Title:         fmt.Sprintf("PSW Bridging %d", i),
			Duration:      "12 weeks",
			MaxEnrollment: 20,
			CategoryID:    &healthcare.ID,
		}
		require.NoError(t, db.Create(&crs).Error)
	}

	require.NoError(t, Delete(db, healthcare.ID))

	fallback, err := Fallback(db)
	require.NoError(t, err)

	// Every dependent course must now reference the fallback
	var orphaned int64
	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("category_id = ?", healthcare.ID).Count(&orphaned).Error)
	assert.Equal(t, int64(0), orphaned)

	var landed int64
	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("category_id = ?", fallback.ID).Count(&landed).Error)
	assert.Equal(t, int64(3), landed)

	// And the category record itself is gone
	err = db.Unscoped().First(&models.Category{}, healthcare.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteDefaultCategoryForbidden(t *testing.T) {
	db := newTestDB(t)

	_, err := Seed(db)
	require.NoError(t, err)

	fallback, err := Fallback(db)
	require.NoError(t, err)

	err = Delete(db, fallback.ID)
	assert.ErrorIs(t, err, ErrDefaultCategory)

	// Still there
	_, err = Fallback(db)
	assert.NoError(t, err)
}

func TestDeleteWithoutFallbackFails(t *testing.T) {
	db := newTestDB(t)

	// A lone non-default category with a dependent course, no fallback seeded
	cat := models.Category{Name: "Healthcare"}
	require.NoError(t, db.Create(&cat).Error)
	crs := courseModels.Course{Title: "PSW Bridging", Duration: "12 weeks", MaxEnrollment: 20, CategoryID: &cat.ID}
	require.NoError(t, db.Create(&crs).Error)

	err := Delete(db, cat.ID)
	assert.ErrorIs(t, err, ErrNoFallback)

	// Deletion must not have proceeded without a landing place
	var reloaded courseModels.Course
	require.NoError(t, db.First(&reloaded, crs.ID).Error)
	require.NotNil(t, reloaded.CategoryID)
	assert.Equal(t, cat.ID, *reloaded.CategoryID)
	assert.NoError(t, db.First(&models.Category{}, cat.ID).Error)
}

func TestDeleteNotFound(t *testing.T) {
	db := newTestDB(t)

	err := Delete(db, 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
