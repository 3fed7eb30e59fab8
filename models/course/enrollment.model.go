package course

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentStatus is the state of an enrollment request.
type EnrollmentStatus string

const (
	StatusPending  EnrollmentStatus = "pending"
	StatusAccepted EnrollmentStatus = "accepted"
	StatusRejected EnrollmentStatus = "rejected"
)

// transitions is the allowed state machine. A transition to the current
// status is not listed here; it is treated as an idempotent no-op by the
// workflow engine and must never fire side effects.
var transitions = map[EnrollmentStatus][]EnrollmentStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusRejected},
	StatusRejected: {StatusAccepted},
}

// Valid reports whether s is a recognized enrollment status.
func (s EnrollmentStatus) Valid() bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// CanTransition reports whether the state machine allows moving from s to
// target. Same-status moves return false; callers handle them as no-ops.
func (s EnrollmentStatus) CanTransition(target EnrollmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Enrollment is an applicant's admission request for a course. It starts
// pending and is moved to accepted or rejected by an admin through the
// workflow engine; only the engine touches the course seat counter and the
// user's enrolled-course set.
type Enrollment struct {
	gorm.Model
	Reference string `json:"reference" gorm:"uniqueIndex;size:36"`

	// Student information
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"index;not null"`
	Phone     string `json:"phone"`

	// Address & demographics
	Country    string `json:"country"`
	City       string `json:"city"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Gender     string `json:"gender"` // Male, Female, X

	// Immigration & background
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

	// Program selection
	SelectedCourseID uint   `json:"selected_course_id" gorm:"index;not null"`
	SelectedCourse   Course `json:"selected_course" gorm:"foreignKey:SelectedCourseID"`

	// Special needs & consent
	SpecialNeeds string `json:"special_needs"`
	ConsentName  string `json:"consent_name" gorm:"not null"`
	ConsentDate  string `json:"consent_date" gorm:"not null"`

	Status EnrollmentStatus `json:"status" gorm:"index;default:'pending'"`

	// Link to a user account when the applicant has one
	UserID *uint `json:"user_id" gorm:"index"`

	// Review metadata
	AdminNotes   string     `json:"admin_notes"`
	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}
