package services

import (
	"context"

	"lingua/database"
	"lingua/models"
	"lingua/store"
)

// CourseService owns the courses collection.
type CourseService struct {
	store store.Store
}

func NewCourseService(st store.Store) *CourseService {
	return &CourseService{store: st}
}

// List returns every course in the catalog.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	snaps, err := s.store.FindAll(ctx, database.CollectionCourses)
	if err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(snaps))
	for i := range snaps {
		course, err := courseFromSnapshot(&snaps[i])
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// GetByID returns a course by identifier, or nil when absent.
func (s *CourseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	snap, err := s.store.Get(ctx, database.CollectionCourses, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return courseFromSnapshot(snap)
}

// GetByTitle returns a course by exact title, or nil when absent. The seed
// script uses it to upsert the catalog.
func (s *CourseService) GetByTitle(ctx context.Context, title string) (*models.Course, error) {
	snap, err := s.store.FindOne(ctx, database.CollectionCourses, store.Where("title", title))
	if err != nil || snap == nil {
		return nil, err
	}
	return courseFromSnapshot(snap)
}

// Create inserts a course and returns its identifier.
func (s *CourseService) Create(ctx context.Context, course models.Course) (string, error) {
	return s.store.Insert(ctx, database.CollectionCourses, map[string]any{
		"title":         course.Title,
		"language":      course.Language,
		"level":         course.Level,
		"duration":      course.Duration,
		"price":         course.Price,
		"description":   course.Description,
		"instructor":    course.Instructor,
		"studentsCount": course.StudentsCount,
		"topics":        course.Topics,
	})
}

// Update applies a course patch; nil fields are untouched.
func (s *CourseService) Update(ctx context.Context, id string, patch models.CoursePatch) error {
	var ops []store.Op
	if patch.Title != nil {
		ops = append(ops, store.Set("title", *patch.Title))
	}
	if patch.Language != nil {
		ops = append(ops, store.Set("language", *patch.Language))
	}
	if patch.Level != nil {
		ops = append(ops, store.Set("level", *patch.Level))
	}
	if patch.Duration != nil {
		ops = append(ops, store.Set("duration", *patch.Duration))
	}
	if patch.Price != nil {
		ops = append(ops, store.Set("price", *patch.Price))
	}
	if patch.Description != nil {
		ops = append(ops, store.Set("description", *patch.Description))
	}
	if patch.Instructor != nil {
		ops = append(ops, store.Set("instructor", *patch.Instructor))
	}
	if patch.Topics != nil {
		ops = append(ops, store.Set("topics", *patch.Topics))
	}
	if len(ops) == 0 {
		return nil
	}
	return s.store.Update(ctx, database.CollectionCourses, id, ops...)
}

// IncrementStudents bumps the enrolled-student counter atomically.
func (s *CourseService) IncrementStudents(ctx context.Context, id string) error {
	return s.store.Update(ctx, database.CollectionCourses, id, store.Increment("studentsCount", 1))
}

func courseFromSnapshot(snap *store.Snapshot) (*models.Course, error) {
	var course models.Course
	if err := snap.Decode(&course); err != nil {
		return nil, err
	}
	course.ID = snap.ID
	return &course, nil
}
