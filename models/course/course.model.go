package course

import (
	"time"

	"gorm.io/gorm"
)

// Course formats
const (
	FormatVirtual  = "Virtual"
	FormatInPerson = "In-Person"
	FormatHybrid   = "Hybrid"
)

// Course statuses
const (
	CourseDraft     = "draft"
	CoursePublished = "published"
	CourseArchived  = "archived"
)

// Course represents a program offered for enrollment.
//
// CurrentEnrollment is a denormalized count of accepted enrollments and is
// written only by the enrollment workflow engine. The invariant
// 0 <= CurrentEnrollment <= MaxEnrollment must hold after every committed
// transition.
type Course struct {
	gorm.Model
	Title             string     `json:"title" gorm:"size:100;not null"`
	Description       string     `json:"description" gorm:"size:1000"`
	CategoryID        *uint      `json:"category_id" gorm:"index"` // nil resolved to the fallback category at write time
	Duration          string     `json:"duration"`
	Format            string     `json:"format" gorm:"default:'Virtual'"` // Virtual, In-Person, Hybrid
	Instructor        string     `json:"instructor" gorm:"size:100"`
	Price             float64    `json:"price" gorm:"default:0"`
	MaxEnrollment     int        `json:"max_enrollment" gorm:"default:30"`
	CurrentEnrollment int        `json:"current_enrollment" gorm:"default:0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	Prerequisites     string     `json:"prerequisites"`
	Status            string     `json:"status" gorm:"default:'draft'"` // draft, published, archived
}

// ValidFormat reports whether f is a recognized course format.
func ValidFormat(f string) bool {
	return f == FormatVirtual || f == FormatInPerson || f == FormatHybrid
}

// ValidCourseStatus reports whether s is a recognized course status.
func ValidCourseStatus(s string) bool {
	return s == CourseDraft || s == CoursePublished || s == CourseArchived
}
