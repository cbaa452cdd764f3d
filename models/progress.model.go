package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Progress is a stored per-user-per-course progress record. At most one
// record should exist per (user, course) pair; the upsert enforces that by
// querying before inserting.
type Progress struct {
	ID                 string    `firestore:"-" json:"-"`
	UserID             string    `firestore:"userId" json:"userId"`
	CourseID           string    `firestore:"courseId" json:"courseId"`
	Progress           float64   `firestore:"progress" json:"progress"`
	CompletedTopics    []string  `firestore:"completedTopics" json:"completedTopics"`
	CompletedSubtopics []string  `firestore:"completedSubtopics" json:"completedSubtopics"`
	CurrentTopic       string    `firestore:"currentTopic" json:"currentTopic"`
	LastAccessed       time.Time `firestore:"lastAccessed" json:"lastAccessed"`
	CreatedAt          time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// StringList accepts either a JSON string or a JSON array of strings.
// Clients report a single completed subtopic as a bare string.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	// json.Unmarshal of null into a string is a no-op success; treat an
	// explicit null as absent instead of a single empty element.
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// ProgressUpdate carries the supplied fields of a progress upsert. Nil
// fields are left untouched on update. CompletedTopics is assigned verbatim
// (the client always sends the authoritative set); CompletedSubtopics is
// set-union merged because subtopic completion arrives incrementally.
type ProgressUpdate struct {
	Progress           *float64   `json:"progress"`
	CompletedTopics    []string   `json:"completedTopics"`
	CompletedSubtopics StringList `json:"completedSubtopics"`
	CurrentTopic       *string    `json:"currentTopic"`
}

// ProgressResponse is the progress shape returned to clients.
type ProgressResponse struct {
	ID                 string   `json:"id"`
	CourseID           string   `json:"courseId"`
	Progress           float64  `json:"progress"`
	CompletedTopics    []string `json:"completedTopics"`
	CompletedSubtopics []string `json:"completedSubtopics"`
	CurrentTopic       string   `json:"currentTopic,omitempty"`
	LastAccessed       string   `json:"lastAccessed"`
}

// APIFormat shapes a progress record for a JSON response.
func (p *Progress) APIFormat() ProgressResponse {
	topics := p.CompletedTopics
	if topics == nil {
		topics = []string{}
	}
	subtopics := p.CompletedSubtopics
	if subtopics == nil {
		subtopics = []string{}
	}
	return ProgressResponse{
		ID:                 p.ID,
		CourseID:           p.CourseID,
		Progress:           p.Progress,
		CompletedTopics:    topics,
		CompletedSubtopics: subtopics,
		CurrentTopic:       p.CurrentTopic,
		LastAccessed:       p.LastAccessed.UTC().Format(time.RFC3339),
	}
}
