package enrollment

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

func createCourse(t *testing.T, db *gorm.DB, maxSeats int) *courseModels.Course {
	t.Helper()

	crs := courseModels.Course{
		Title:         "Newcomer Career Pathways",
		Description:   "Orientation and job search skills",
		Duration:      "10 weeks",
		Format:        courseModels.FormatVirtual,
		MaxEnrollment: maxSeats,
		Status:        courseModels.CoursePublished,
	}
	require.NoError(t, db.Create(&crs).Error)
	return &crs
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		FirstName: "Amina",
		LastName:  "Diallo",
		Email:     email,
		Password:  "not-a-real-hash",
		Role:      "user",
		Status:    "active",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func submitInput(courseID uint, email string) SubmitInput {
	return SubmitInput{
		FirstName:        "Amina",
		LastName:         "Diallo",
		Email:            email,
		Gender:           "Female",
		SelectedCourseID: courseID,
		ConsentName:      "Amina Diallo",
		ConsentDate:      "2026-08-01",
	}
}

func countEnrollments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).Count(&n).Error)
	return n
}

func courseCounter(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var crs courseModels.Course
	require.NoError(t, db.First(&crs, id).Error)
	return crs.CurrentEnrollment
}

func userCourseIDs(t *testing.T, db *gorm.DB, userID uint) []uint {
	t.Helper()
	var user models.User
	require.NoError(t, db.Preload("CoursesEnrolled").First(&user, userID).Error)
	ids := make([]uint, 0, len(user.CoursesEnrolled))
	for _, crs := range user.CoursesEnrolled {
		ids = append(ids, crs.ID)
	}
	return ids
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "Amina@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusPending, enr.Status)
	assert.NotEmpty(t, enr.Reference)
	assert.Equal(t, "amina@example.com", enr.Email, "email should be normalized")
	assert.Equal(t, crs.Title, enr.SelectedCourse.Title, "course summary should be attached")

	// Submission never touches the seat counter
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))
}

func TestSubmitCourseNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := Submit(db, submitInput(999, "amina@example.com"))
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Equal(t, int64(0), countEnrollments(t, db), "no record should be created")
}

func TestSubmitUserNotFound(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	in := submitInput(crs.ID, "amina@example.com")
	missing := uint(999)
	in.UserID = &missing

	_, err := Submit(db, in)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, int64(0), countEnrollments(t, db))
}

func TestSubmitDuplicateActiveRequest(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	_, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	// Same course, same applicant, different casing
	_, err = Submit(db, submitInput(crs.ID, "AMINA@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// A second course is fine
	other := createCourse(t, db, 30)
	_, err = Submit(db, submitInput(other.ID, "amina@example.com"))
	assert.NoError(t, err)
}

func TestSubmitAllowedAfterRejection(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	_, err = Review(db, enr.ID, courseModels.StatusRejected, 1, "")
	require.NoError(t, err)

	// Rejected requests are not active, so a fresh submission is allowed
	_, err = Submit(db, submitInput(crs.ID, "amina@example.com"))
	assert.NoError(t, err)
}

func TestReviewAcceptTakesSeatAndEnrollsUser(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)
	user := createUser(t, db, "amina@example.com")

	in := submitInput(crs.ID, user.Email)
	in.UserID = &user.ID
	enr, err := Submit(db, in)
	require.NoError(t, err)

	reviewed, err := Review(db, enr.ID, courseModels.StatusAccepted, 42, "good fit")
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusAccepted, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedByID)
	assert.Equal(t, uint(42), *reviewed.ReviewedByID)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "good fit", reviewed.AdminNotes)

	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
	assert.Equal(t, []uint{crs.ID}, userCourseIDs(t, db, user.ID))
}

func TestReviewRejectPendingHasNoSideEffects(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)
	user := createUser(t, db, "amina@example.com")

	in := submitInput(crs.ID, user.Email)
	in.UserID = &user.ID
	enr, err := Submit(db, in)
	require.NoError(t, err)

	reviewed, err := Review(db, enr.ID, courseModels.StatusRejected, 42, "")
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusRejected, reviewed.Status)
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))
	assert.Empty(t, userCourseIDs(t, db, user.ID))
}

func TestReviewAcceptAtCapacity(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 1)

	e1, err := Submit(db, submitInput(crs.ID, "first@example.com"))
	require.NoError(t, err)
	e2, err := Submit(db, submitInput(crs.ID, "second@example.com"))
	require.NoError(t, err)

	_, err = Review(db, e1.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)
	assert.Equal(t, 1, courseCounter(t, db, crs.ID))

	// The second accept must fail and change nothing
	_, err = Review(db, e2.ID, courseModels.StatusAccepted, 42, "")
	assert.ErrorIs(t, err, ErrCapacityFull)

	assert.Equal(t, 1, courseCounter(t, db, crs.ID))

	var stored courseModels.Enrollment
	require.NoError(t, db.First(&stored, e2.ID).Error)
	assert.Equal(t, courseModels.StatusPending, stored.Status)
	assert.Nil(t, stored.ReviewedByID, "failed transition must leave no review metadata")
}

func TestReviewRejectAcceptedReversesSideEffects(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)
	user := createUser(t, db, "amina@example.com")

	in := submitInput(crs.ID, user.Email)
	in.UserID = &user.ID
	enr, err := Submit(db, in)
	require.NoError(t, err)

	_, err = Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)
	require.Equal(t, 1, courseCounter(t, db, crs.ID))

	reviewed, err := Review(db, enr.ID, courseModels.StatusRejected, 42, "seat withdrawn")
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusRejected, reviewed.Status)
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))
	assert.Empty(t, userCourseIDs(t, db, user.ID))
}

func TestReviewRejectedCanBeAccepted(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	_, err = Review(db, enr.ID, courseModels.StatusRejected, 42, "")
	require.NoError(t, err)

	// Only the current stored status matters, not history
	reviewed, err := Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusAccepted, reviewed.Status)
	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
}

func TestReviewSameStatusIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)
	user := createUser(t, db, "amina@example.com")

	in := submitInput(crs.ID, user.Email)
	in.UserID = &user.ID
	enr, err := Submit(db, in)
	require.NoError(t, err)

	_, err = Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)

	// Accepting again must not double-increment or duplicate the user entry
	_, err = Review(db, enr.ID, courseModels.StatusAccepted, 42, "second look")
	require.NoError(t, err)

	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
	assert.Equal(t, []uint{crs.ID}, userCourseIDs(t, db, user.ID))
}

func TestReviewZeroCounterIsIntegrityFault(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	// Force an impossible state: accepted request with a zero counter
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enr.ID).
		Update("status", courseModels.StatusAccepted).Error)

	_, err = Review(db, enr.ID, courseModels.StatusRejected, 42, "")
	assert.ErrorIs(t, err, ErrLedgerCorrupt)

	// Nothing may change: counter stays at zero, status stays accepted
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))
	var stored courseModels.Enrollment
	require.NoError(t, db.First(&stored, enr.ID).Error)
	assert.Equal(t, courseModels.StatusAccepted, stored.Status)
}

func TestReviewGuestSkipsUserList(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "guest@example.com"))
	require.NoError(t, err)

	reviewed, err := Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)

	assert.Equal(t, courseModels.StatusAccepted, reviewed.Status)
	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
}

func TestReviewNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := Review(db, 999, courseModels.StatusAccepted, 42, "")
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestReviewRejectsInvalidTarget(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	_, err = Review(db, enr.ID, courseModels.StatusPending, 42, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEnrollDirect(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 2)
	user := createUser(t, db, "amina@example.com")

	enrolled, err := EnrollDirect(db, user.ID, crs.ID)
	require.NoError(t, err)

	require.Len(t, enrolled.CoursesEnrolled, 1)
	assert.Equal(t, crs.ID, enrolled.CoursesEnrolled[0].ID)
	assert.Equal(t, 1, courseCounter(t, db, crs.ID))

	_, err = EnrollDirect(db, user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
}

func TestEnrollDirectCapacity(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 1)
	first := createUser(t, db, "first@example.com")
	second := createUser(t, db, "second@example.com")

	_, err := EnrollDirect(db, first.ID, crs.ID)
	require.NoError(t, err)

	_, err = EnrollDirect(db, second.ID, crs.ID)
	assert.ErrorIs(t, err, ErrCapacityFull)

	assert.Equal(t, 1, courseCounter(t, db, crs.ID))
	assert.Empty(t, userCourseIDs(t, db, second.ID))
}

func TestEnrollDirectNotFound(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 2)
	user := createUser(t, db, "amina@example.com")

	_, err := EnrollDirect(db, 999, crs.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = EnrollDirect(db, user.ID, 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestUnenrollDirect(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 2)
	user := createUser(t, db, "amina@example.com")

	_, err := EnrollDirect(db, user.ID, crs.ID)
	require.NoError(t, err)

	unenrolled, err := UnenrollDirect(db, user.ID, crs.ID)
	require.NoError(t, err)

	assert.Empty(t, unenrolled.CoursesEnrolled)
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))
}

func TestUnenrollDirectNotEnrolled(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 2)
	user := createUser(t, db, "amina@example.com")

	_, err := UnenrollDirect(db, user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestUnenrollDirectZeroCounterIsIntegrityFault(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 2)
	user := createUser(t, db, "amina@example.com")

	// Drifted state: user holds the course but the counter is zero
	require.NoError(t, db.Exec("INSERT INTO user_courses (user_id, course_id) VALUES (?, ?)", user.ID, crs.ID).Error)

	_, err := UnenrollDirect(db, user.ID, crs.ID)
	assert.ErrorIs(t, err, ErrLedgerCorrupt)

	// The membership row must survive the aborted transaction
	assert.Equal(t, []uint{crs.ID}, userCourseIDs(t, db, user.ID))
}

func TestReviewDetectsConcurrentDecision(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)
	reviewer := createUser(t, db, "admin@example.com")

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)

	// Interleave a rival decision between the engine's status read and its
	// course update: the request flips to accepted and its seat is already
	// taken by the time this review reaches the counter.
	fired := false
	err = db.Callback().Update().Before("gorm:update").Register("rival_decision", func(d *gorm.DB) {
		if fired || d.Statement.Table != "courses" {
			return
		}
		fired = true

		_, execErr := d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"UPDATE enrollments SET status = ? WHERE id = ?", string(courseModels.StatusAccepted), enr.ID)
		require.NoError(t, execErr)

		_, execErr = d.Statement.ConnPool.ExecContext(d.Statement.Context,
			"UPDATE courses SET current_enrollment = current_enrollment + 1 WHERE id = ?", crs.ID)
		require.NoError(t, execErr)
	})
	require.NoError(t, err)
	defer db.Callback().Update().Remove("rival_decision")

	_, err = Review(db, enr.ID, courseModels.StatusAccepted, reviewer.ID, "")
	require.True(t, fired, "rival decision should interleave before the counter update")
	assert.ErrorIs(t, err, ErrReviewConflict)

	// Everything this review touched must roll back: no second increment,
	// no review metadata on the stale read.
	var reloaded courseModels.Enrollment
	require.NoError(t, db.First(&reloaded, enr.ID).Error)
	assert.Equal(t, courseModels.StatusPending, reloaded.Status)
	assert.Nil(t, reloaded.ReviewedByID)
	assert.Equal(t, 0, courseCounter(t, db, crs.ID))

	drifts, err := AuditLedger(db)
	require.NoError(t, err)
	assert.Empty(t, drifts, "an aborted review must not drift the ledger")
}
