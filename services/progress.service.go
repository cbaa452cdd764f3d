package services

import (
	"context"
	"math"

	"lingua/database"
	"lingua/models"
	"lingua/store"
)

// ProgressService owns the userProgress collection. One record per
// (user, course) pair, enforced by querying before inserting; concurrent
// first upserts for the same pair can still slip through, which is accepted.
type ProgressService struct {
	store store.Store
}

func NewProgressService(st store.Store) *ProgressService {
	return &ProgressService{store: st}
}

// GetByUserAndCourse returns the progress record for a (user, course) pair,
// or nil when the user has not touched the course yet.
func (s *ProgressService) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Progress, error) {
	snap, err := s.store.FindOne(ctx, database.CollectionProgress,
		store.Where("userId", userID), store.Where("courseId", courseID))
	if err != nil || snap == nil {
		return nil, err
	}
	return progressFromSnapshot(snap)
}

// ListByUser returns every progress record owned by a user.
func (s *ProgressService) ListByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	snaps, err := s.store.FindAll(ctx, database.CollectionProgress, store.Where("userId", userID))
	if err != nil {
		return nil, err
	}
	records := make([]models.Progress, 0, len(snaps))
	for i := range snaps {
		record, err := progressFromSnapshot(&snaps[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// Upsert creates or updates the progress record for a (user, course) pair
// and returns its identifier.
//
// On update, completedTopics is assigned verbatim while completedSubtopics
// is merged as a deduplicated set-union with the stored list. The caller for
// topics always sends the full authoritative set; subtopic completion is
// reported incrementally and must accumulate. The numeric percentage is
// stored as given here; only UpdateProgress clamps.
func (s *ProgressService) Upsert(ctx context.Context, userID, courseID string, upd models.ProgressUpdate) (string, error) {
	existing, err := s.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return "", err
	}

	if existing == nil {
		fields := map[string]any{
			"userId":             userID,
			"courseId":           courseID,
			"progress":           0.0,
			"completedTopics":    orEmpty(upd.CompletedTopics),
			"completedSubtopics": dedupe(upd.CompletedSubtopics),
			"lastAccessed":       store.ServerNow,
		}
		if upd.Progress != nil {
			fields["progress"] = *upd.Progress
		}
		if upd.CurrentTopic != nil {
			fields["currentTopic"] = *upd.CurrentTopic
		}
		return s.store.Insert(ctx, database.CollectionProgress, fields)
	}

	ops := []store.Op{store.Now("lastAccessed")}
	if upd.Progress != nil {
		ops = append(ops, store.Set("progress", *upd.Progress))
	}
	if upd.CompletedTopics != nil {
		ops = append(ops, store.Set("completedTopics", upd.CompletedTopics))
	}
	if upd.CurrentTopic != nil {
		ops = append(ops, store.Set("currentTopic", *upd.CurrentTopic))
	}
	if len(upd.CompletedSubtopics) > 0 {
		ops = append(ops, store.Union("completedSubtopics", dedupe(upd.CompletedSubtopics)...))
	}
	if err := s.store.Update(ctx, database.CollectionProgress, existing.ID, ops...); err != nil {
		return "", err
	}
	return existing.ID, nil
}

// UpdateProgress sets the completion percentage, clamped into [0, 100].
func (s *ProgressService) UpdateProgress(ctx context.Context, userID, courseID string, progress float64) error {
	clamped := math.Min(100, math.Max(0, progress))
	_, err := s.Upsert(ctx, userID, courseID, models.ProgressUpdate{Progress: &clamped})
	return err
}

// AddCompletedTopic marks a single topic completed, creating the progress
// record when absent.
func (s *ProgressService) AddCompletedTopic(ctx context.Context, userID, courseID, topicID string) error {
	existing, err := s.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = s.Upsert(ctx, userID, courseID, models.ProgressUpdate{CompletedTopics: []string{topicID}})
		return err
	}
	if contains(existing.CompletedTopics, topicID) {
		return nil
	}
	return s.store.Update(ctx, database.CollectionProgress, existing.ID, store.Union("completedTopics", topicID))
}

// AddCompletedSubtopic marks a single subtopic completed, creating the
// progress record when absent.
func (s *ProgressService) AddCompletedSubtopic(ctx context.Context, userID, courseID, subtopicID string) error {
	existing, err := s.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if existing == nil {
		_, err = s.Upsert(ctx, userID, courseID, models.ProgressUpdate{CompletedSubtopics: models.StringList{subtopicID}})
		return err
	}
	if contains(existing.CompletedSubtopics, subtopicID) {
		return nil
	}
	return s.store.Update(ctx, database.CollectionProgress, existing.ID, store.Union("completedSubtopics", subtopicID))
}

func progressFromSnapshot(snap *store.Snapshot) (*models.Progress, error) {
	var record models.Progress
	if err := snap.Decode(&record); err != nil {
		return nil, err
	}
	record.ID = snap.ID
	return &record, nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
