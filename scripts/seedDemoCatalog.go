package main

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	categoryService "lms/services/category"
)

// Seeds a small demo catalog for local development. Categories are created
// by the normal boot seeding; this adds a published course per category.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	categories, err := categoryService.Seed(db)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	byName := make(map[string]uint, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat.ID
	}

	start := time.Now().AddDate(0, 1, 0)
	end := start.AddDate(0, 3, 0)

	demo := []courseModels.Course{
		{
			Title:         "Personal Support Worker Bridging",
			Description:   "Bridging program for internationally educated healthcare workers.",
			Duration:      "12 weeks",
			Format:        courseModels.FormatHybrid,
			Instructor:    "D. Okafor",
			Price:         450,
			MaxEnrollment: 25,
			StartDate:     &start,
			EndDate:       &end,
			Status:        courseModels.CoursePublished,
		},
		{
			Title:         "Leadership Essentials",
			Description:   "Workplace leadership fundamentals for career changers.",
			Duration:      "8 weeks",
			Format:        courseModels.FormatVirtual,
			Instructor:    "M. Tremblay",
			Price:         300,
			MaxEnrollment: 30,
			StartDate:     &start,
			EndDate:       &end,
			Status:        courseModels.CoursePublished,
		},
		{
			Title:         "Newcomer Career Pathways",
			Description:   "Orientation, language support and job search skills for newcomers.",
			Duration:      "10 weeks",
			Format:        courseModels.FormatInPerson,
			Instructor:    "S. Haddad",
			Price:         0,
			MaxEnrollment: 20,
			StartDate:     &start,
			EndDate:       &end,
			Status:        courseModels.CoursePublished,
		},
	}

	categoryNames := []string{"Healthcare", "Leadership", "Newcomer Pathways"}

	for i := range demo {
		if id, ok := byName[categoryNames[i]]; ok {
			demo[i].CategoryID = &id
		}

		var existing int64
		db.Model(&courseModels.Course{}).Where("title = ?", demo[i].Title).Count(&existing)
		if existing > 0 {
			log.Printf("Skipping %q, already present", demo[i].Title)
			continue
		}

		if err := db.Create(&demo[i]).Error; err != nil {
			log.Fatalf("Failed to create course %q: %v", demo[i].Title, err)
		}
		log.Printf("Created course %q", demo[i].Title)
	}

	log.Println("Demo catalog seeding complete.")
}
