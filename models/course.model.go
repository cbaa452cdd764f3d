package models

import "time"

// Course difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course is a stored course record. Read-mostly: the only mutation outside
// the seeding flow is the studentsCount increment on enrollment.
type Course struct {
	ID            string    `firestore:"-" json:"-"`
	Title         string    `firestore:"title" json:"title"`
	Language      string    `firestore:"language" json:"language"`
	Level         string    `firestore:"level" json:"level"`
	Duration      string    `firestore:"duration" json:"duration"`
	Price         float64   `firestore:"price" json:"price"`
	Description   string    `firestore:"description" json:"description"`
	Instructor    string    `firestore:"instructor" json:"instructor"`
	StudentsCount int64     `firestore:"studentsCount" json:"studentsCount"`
	Topics        []any     `firestore:"topics" json:"topics"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// CoursePatch is a partial update of a course record; nil fields are untouched.
type CoursePatch struct {
	Title       *string  `json:"title"`
	Language    *string  `json:"language"`
	Level       *string  `json:"level"`
	Duration    *string  `json:"duration"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Instructor  *string  `json:"instructor"`
	Topics      *[]any   `json:"topics"`
}

// CourseResponse is the course shape returned to clients.
type CourseResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Language      string  `json:"language"`
	Level         string  `json:"level"`
	Duration      string  `json:"duration"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	Instructor    string  `json:"instructor"`
	StudentsCount int64   `json:"studentsCount"`
	Topics        []any   `json:"topics"`
}

// APIFormat shapes a course for a JSON response.
func (c *Course) APIFormat() CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Title:         c.Title,
		Language:      c.Language,
		Level:         c.Level,
		Duration:      c.Duration,
		Price:         c.Price,
		Description:   c.Description,
		Instructor:    c.Instructor,
		StudentsCount: c.StudentsCount,
		Topics:        c.Topics,
	}
}
