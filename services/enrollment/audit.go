package enrollment

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// LedgerDrift reports a course whose stored seat counter disagrees with the
// actual number of accepted enrollment requests.
type LedgerDrift struct {
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
	Stored   int    `json:"stored"`
	Actual   int64  `json:"actual"`
}

// AuditLedger recomputes the accepted-enrollment count per course and
// compares it to the denormalized counter. It never repairs anything: drift
// means a prior bug or race and is reported for an operator to investigate.
// The scan runs outside the transition path and takes no locks.
func AuditLedger(db *gorm.DB) ([]LedgerDrift, error) {
	var courses []courseModels.Course
	if err := db.Find(&courses).Error; err != nil {
		return nil, err
	}

	var drifts []LedgerDrift
	for _, crs := range courses {
		var actual int64
		err := db.Model(&courseModels.Enrollment{}).
			Where("selected_course_id = ? AND status = ?", crs.ID, courseModels.StatusAccepted).
			Count(&actual).Error
		if err != nil {
			return nil, err
		}

		if int64(crs.CurrentEnrollment) != actual || crs.CurrentEnrollment < 0 || crs.CurrentEnrollment > crs.MaxEnrollment {
			drifts = append(drifts, LedgerDrift{
				CourseID: crs.ID,
				Title:    crs.Title,
				Stored:   crs.CurrentEnrollment,
				Actual:   actual,
			})
		}
	}

	return drifts, nil
}
