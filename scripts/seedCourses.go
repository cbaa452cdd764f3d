package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"lingua/config"
	"lingua/database"
	"lingua/models"
	"lingua/services"
	"lingua/store"
)

// Seeds the course catalog from a JSON file. Courses are matched by title:
// existing ones are updated in place, new ones created.
//
//	go run ./scripts courses.json
func main() {
	cfg := config.LoadConfig()

	ctx := context.Background()
	clients, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Firebase: %v", err)
	}
	defer clients.Close()

	path := "courses.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var catalog []models.Course
	if err := json.Unmarshal(raw, &catalog); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	courses := services.NewCourseService(store.NewFirestoreStore(clients.Firestore))

	created, updated := 0, 0
	for i := range catalog {
		course := catalog[i]
		existing, err := courses.GetByTitle(ctx, course.Title)
		if err != nil {
			log.Fatalf("Failed to look up %q: %v", course.Title, err)
		}

		if existing != nil {
			patch := models.CoursePatch{
				Language:    &course.Language,
				Level:       &course.Level,
				Duration:    &course.Duration,
				Price:       &course.Price,
				Description: &course.Description,
				Instructor:  &course.Instructor,
				Topics:      &course.Topics,
			}
			if err := courses.Update(ctx, existing.ID, patch); err != nil {
				log.Fatalf("Failed to update %q: %v", course.Title, err)
			}
			updated++
			continue
		}

		if _, err := courses.Create(ctx, course); err != nil {
			log.Fatalf("Failed to create %q: %v", course.Title, err)
		}
		created++
	}

	log.Printf("Seeding completed: %d created, %d updated.", created, updated)
}
