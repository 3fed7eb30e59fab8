package models

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName string `json:"first_name" gorm:"default:''"`
	LastName  string `json:"last_name" gorm:"default:''"`
	Email     string `json:"email" gorm:"unique;not null"`
	Phone     string `json:"phone" gorm:"default:''"`
	Password  string `json:"-" gorm:"not null"`
	Role      string `json:"role" gorm:"default:'user'"`     // user, admin
	Status    string `json:"status" gorm:"default:'active'"` // active, inactive

	// CoursesEnrolled is the set of courses the user holds a seat in.
	// Only the enrollment workflow engine may mutate it.
	CoursesEnrolled []courseModels.Course `json:"courses_enrolled" gorm:"many2many:user_courses;"`
}
