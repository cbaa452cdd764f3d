package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua/models"
	"lingua/store"
)

func seedCourse(t *testing.T, courses *CourseService, title string) string {
	t.Helper()
	id, err := courses.Create(context.Background(), models.Course{
		Title:      title,
		Language:   "English",
		Level:      models.LevelBeginner,
		Duration:   "6 weeks",
		Price:      49.99,
		Instructor: "Olena",
	})
	require.NoError(t, err)
	return id
}

func TestCourseListAndGet(t *testing.T) {
	courses := NewCourseService(store.NewMemoryStore())
	ctx := context.Background()

	id := seedCourse(t, courses, "English A1")
	seedCourse(t, courses, "English A2")

	all, err := courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	course, err := courses.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "English A1", course.Title)
	assert.Equal(t, models.LevelBeginner, course.Level)

	missing, err := courses.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCourseUpdatePatchesSuppliedFields(t *testing.T) {
	courses := NewCourseService(store.NewMemoryStore())
	ctx := context.Background()

	id := seedCourse(t, courses, "English A1")

	level := models.LevelIntermediate
	price := 59.99
	require.NoError(t, courses.Update(ctx, id, models.CoursePatch{Level: &level, Price: &price}))

	course, err := courses.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.LevelIntermediate, course.Level)
	assert.Equal(t, 59.99, course.Price)
	assert.Equal(t, "English A1", course.Title)
}

func TestIncrementStudents(t *testing.T) {
	courses := NewCourseService(store.NewMemoryStore())
	ctx := context.Background()

	id := seedCourse(t, courses, "English A1")
	require.NoError(t, courses.IncrementStudents(ctx, id))
	require.NoError(t, courses.IncrementStudents(ctx, id))

	course, err := courses.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), course.StudentsCount)
}

func TestGetByTitle(t *testing.T) {
	courses := NewCourseService(store.NewMemoryStore())
	ctx := context.Background()

	id := seedCourse(t, courses, "English A1")

	course, err := courses.GetByTitle(ctx, "English A1")
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, id, course.ID)

	missing, err := courses.GetByTitle(ctx, "German C2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
