package models

import "gorm.io/gorm"

// Category groups courses for the catalog. Exactly one category carries
// IsDefault and acts as the fallback when a category is deleted or a course
// is created without one.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null;size:50"`
	Description string `json:"description" gorm:"size:200"`
	IsDefault   bool   `json:"is_default" gorm:"default:false"`
}
