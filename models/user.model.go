package models

import "time"

// TestResult is one test submission embedded in a user record. CompletedAt
// is captured at write time, not by the store clock, because Firestore does
// not allow server-timestamp sentinels inside array elements.
type TestResult struct {
	TestID      string         `firestore:"testId" json:"testId"`
	Score       float64        `firestore:"score" json:"score"`
	MaxScore    float64        `firestore:"maxScore" json:"maxScore"`
	Answers     map[string]any `firestore:"answers" json:"answers"`
	CompletedAt time.Time      `firestore:"completedAt" json:"completedAt"`
}

// User is a stored user record. FirebaseUID stays empty until the record is
// linked to an identity-provider subject; Email is stored lowercased.
type User struct {
	ID              string       `firestore:"-" json:"-"`
	FirebaseUID     string       `firestore:"firebaseUid" json:"firebaseUid"`
	Email           string       `firestore:"email" json:"email"`
	Name            string       `firestore:"name" json:"name"`
	EnrolledCourses []string     `firestore:"enrolledCourses" json:"enrolledCourses"`
	PaidCourses     []string     `firestore:"paidCourses" json:"paidCourses"`
	TestResults     []TestResult `firestore:"testResults" json:"testResults"`
	CreatedAt       time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `firestore:"updatedAt" json:"updatedAt"`
}

// UserPatch is a partial update of a user record; nil fields are untouched.
type UserPatch struct {
	Name            *string   `json:"name"`
	EnrolledCourses *[]string `json:"enrolledCourses"`
	PaidCourses     *[]string `json:"paidCourses"`
}

// UserResponse is the user shape returned to clients.
type UserResponse struct {
	ID              string               `json:"id"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	EnrolledCourses []string             `json:"enrolledCourses"`
	PaidCourses     []string             `json:"paidCourses"`
	TestResults     []TestResultResponse `json:"testResults"`
}

type TestResultResponse struct {
	TestID      string         `json:"testId"`
	Score       float64        `json:"score"`
	MaxScore    float64        `json:"maxScore"`
	Answers     map[string]any `json:"answers"`
	CompletedAt string         `json:"completedAt"`
}

// APIFormat shapes a user for a JSON response. List fields are never null in
// responses, only empty.
func (u *User) APIFormat() UserResponse {
	results := make([]TestResultResponse, 0, len(u.TestResults))
	for _, r := range u.TestResults {
		results = append(results, TestResultResponse{
			TestID:      r.TestID,
			Score:       r.Score,
			MaxScore:    r.MaxScore,
			Answers:     r.Answers,
			CompletedAt: r.CompletedAt.UTC().Format(time.RFC3339),
		})
	}
	enrolled := u.EnrolledCourses
	if enrolled == nil {
		enrolled = []string{}
	}
	paid := u.PaidCourses
	if paid == nil {
		paid = []string{}
	}
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		EnrolledCourses: enrolled,
		PaidCourses:     paid,
		TestResults:     results,
	}
}
