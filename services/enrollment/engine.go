package enrollment

import (
	"errors"
	"strings"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitInput carries the admissions form payload. Field-level validation
// (required fields, enum values) happens at the HTTP validator layer; the
// engine enforces referential and duplicate-request preconditions.
type SubmitInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	Country    string
	City       string
	Address    string
	PostalCode string
	Gender     string

	ImmigrationStatus   string
	CountryOfOrigin     string
	ArrivalDate         string
	WorkExperience      string
	EducationBackground string
	AttendedLinc        string
	AttendedLincDetails string
	LanguageCompanion   string
	DateIntake          string
	AssessmentDate      string
	CLBListening        string
	CLBSpeaking         string
	CLBReading          string
	CLBWriting          string

	SelectedCourseID uint
	SpecialNeeds     string
	ConsentName      string
	ConsentDate      string

	UserID *uint
}

// Submit creates a pending enrollment request. Capacity is deliberately not
// checked here: requests may queue past nominal capacity and the limit is
// enforced at acceptance time, leaving admins discretion over the waitlist.
func Submit(db *gorm.DB, in SubmitInput) (*courseModels.Enrollment, error) {
	var crs courseModels.Course
	if err := db.First(&crs, in.SelectedCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if in.UserID != nil {
		var user models.User
		if err := db.First(&user, *in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// At most one active request per (email, course)
	var active int64
	err := db.Model(&courseModels.Enrollment{}).
		Where("email = ? AND selected_course_id = ? AND status IN ?",
			email, in.SelectedCourseID,
			[]courseModels.EnrollmentStatus{courseModels.StatusPending, courseModels.StatusAccepted}).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrDuplicateRequest
	}

	enr := courseModels.Enrollment{
		Reference: uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Phone:     in.Phone,

		Country:    in.Country,
		City:       in.City,
		Address:    in.Address,
		PostalCode: in.PostalCode,
		Gender:     in.Gender,

		ImmigrationStatus:   in.ImmigrationStatus,
		CountryOfOrigin:     in.CountryOfOrigin,
		ArrivalDate:         in.ArrivalDate,
		WorkExperience:      in.WorkExperience,
		EducationBackground: in.EducationBackground,
		AttendedLinc:        in.AttendedLinc,
		AttendedLincDetails: in.AttendedLincDetails,
		LanguageCompanion:   in.LanguageCompanion,
		DateIntake:          in.DateIntake,
		AssessmentDate:      in.AssessmentDate,
		CLBListening:        in.CLBListening,
		CLBSpeaking:         in.CLBSpeaking,
		CLBReading:          in.CLBReading,
		CLBWriting:          in.CLBWriting,

		SelectedCourseID: in.SelectedCourseID,
		SpecialNeeds:     in.SpecialNeeds,
		ConsentName:      in.ConsentName,
		ConsentDate:      in.ConsentDate,

		Status: courseModels.StatusPending,
		UserID: in.UserID,
	}

	if err := db.Create(&enr).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("SelectedCourse").First(&enr, enr.ID).Error; err != nil {
		return nil, err
	}
	return &enr, nil
}

// Review moves an enrollment request to the target status and applies the
// seat-counter and user-list side effects in the same transaction. A target
// equal to the current status only refreshes review metadata; side effects
// fire solely when the stored status actually changes.
func Review(db *gorm.DB, enrollmentID uint, target courseModels.EnrollmentStatus, reviewerID uint, adminNotes string) (*courseModels.Enrollment, error) {
	if target != courseModels.StatusAccepted && target != courseModels.StatusRejected {
		return nil, ErrInvalidTransition
	}

	var enr courseModels.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&enr, enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		prev := enr.Status
		if prev != target {
			if !prev.CanTransition(target) {
				return ErrInvalidTransition
			}

			if target == courseModels.StatusAccepted {
				var crs courseModels.Course
				if err := tx.First(&crs, enr.SelectedCourseID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrCourseNotFound
					}
					return err
				}
				if err := takeSeat(tx, enr.SelectedCourseID); err != nil {
					return err
				}
				if enr.UserID != nil {
					if err := addToUserCourses(tx, *enr.UserID, enr.SelectedCourseID); err != nil {
						return err
					}
				}
			}

			if prev == courseModels.StatusAccepted {
				if err := releaseSeat(tx, enr.SelectedCourseID); err != nil {
					return err
				}
				if enr.UserID != nil {
					if err := removeFromUserCourses(tx, *enr.UserID, enr.SelectedCourseID); err != nil {
						return err
					}
				}
			}
		}

		updates := map[string]interface{}{
			"status":         target,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    time.Now(),
		}
		if adminNotes != "" {
			updates["admin_notes"] = adminNotes
		}

		// The status write is conditional on the status read at the top of
		// this transaction. A decision that committed in between makes the
		// guard match zero rows, so the side effects above roll back instead
		// of being applied twice.
		res := tx.Model(&courseModels.Enrollment{}).
			Where("id = ? AND status = ?", enr.ID, prev).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReviewConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("SelectedCourse").First(&enr, enr.ID).Error; err != nil {
		return nil, err
	}
	return &enr, nil
}

// EnrollDirect enrolls a known user into a course without going through the
// request workflow. Same capacity and atomicity rules as acceptance.
func EnrollDirect(db *gorm.DB, userID, courseID uint) (*models.User, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.First(&crs, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		enrolled, err := isEnrolled(tx, userID, courseID)
		if err != nil {
			return err
		}
		if enrolled {
			return ErrAlreadyEnrolled
		}

		if err := takeSeat(tx, courseID); err != nil {
			return err
		}
		return addToUserCourses(tx, userID, courseID)
	})
	if err != nil {
		return nil, err
	}

	return loadUserWithCourses(db, userID)
}

// UnenrollDirect removes a user from a course and releases the seat. An
// already-zero counter is reported as corruption, not clamped.
func UnenrollDirect(db *gorm.DB, userID, courseID uint) (*models.User, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var crs courseModels.Course
		if err := tx.First(&crs, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		enrolled, err := isEnrolled(tx, userID, courseID)
		if err != nil {
			return err
		}
		if !enrolled {
			return ErrNotEnrolled
		}

		if err := releaseSeat(tx, courseID); err != nil {
			return err
		}
		return removeFromUserCourses(tx, userID, courseID)
	})
	if err != nil {
		return nil, err
	}

	return loadUserWithCourses(db, userID)
}

// takeSeat increments the course counter only while a seat is free. The
// guard in the WHERE clause is what makes two concurrent accepts of the last
// seat impossible: the second update matches zero rows.
func takeSeat(tx *gorm.DB, courseID uint) error {
	res := tx.Model(&courseModels.Course{}).
		Where("id = ? AND current_enrollment < max_enrollment", courseID).
		UpdateColumn("current_enrollment", gorm.Expr("current_enrollment + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCapacityFull
	}
	return nil
}

// releaseSeat decrements the counter, refusing to ever drive it negative.
func releaseSeat(tx *gorm.DB, courseID uint) error {
	res := tx.Model(&courseModels.Course{}).
		Where("id = ? AND current_enrollment > 0", courseID).
		UpdateColumn("current_enrollment", gorm.Expr("current_enrollment - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLedgerCorrupt
	}
	return nil
}

func isEnrolled(tx *gorm.DB, userID, courseID uint) (bool, error) {
	var n int64
	err := tx.Table("user_courses").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n > 0, err
}

// addToUserCourses appends the course to the user's enrolled set with set
// semantics. A user id that no longer resolves to an account is skipped
// silently, matching guest submissions.
func addToUserCourses(tx *gorm.DB, userID, courseID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	enrolled, err := isEnrolled(tx, userID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}

	return tx.Exec("INSERT INTO user_courses (user_id, course_id) VALUES (?, ?)", userID, courseID).Error
}

func removeFromUserCourses(tx *gorm.DB, userID, courseID uint) error {
	return tx.Exec("DELETE FROM user_courses WHERE user_id = ? AND course_id = ?", userID, courseID).Error
}

func loadUserWithCourses(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("CoursesEnrolled").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
