package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"lingua/database"
	"lingua/models"
	"lingua/store"
)

// ErrUserUnavailable is returned when a user record cannot be read back
// after creation or linking. Reconciliation never returns a partially
// formed user.
var ErrUserUnavailable = errors.New("failed to create or retrieve user")

// UserService owns the users collection: lookups, reconciliation of
// identity-provider subjects onto user records, profile updates, enrollment
// and test-result recording.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// GetByFirebaseUID returns the user linked to a subject identifier, or nil
// when no record is linked to it.
func (s *UserService) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	snap, err := s.store.FindOne(ctx, database.CollectionUsers, store.Where("firebaseUid", uid))
	if err != nil || snap == nil {
		return nil, err
	}
	return userFromSnapshot(snap)
}

// GetByEmail returns the user with the given email. Emails are stored
// lowercased, so the comparison is case-insensitive.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	snap, err := s.store.FindOne(ctx, database.CollectionUsers, store.Where("email", strings.ToLower(email)))
	if err != nil || snap == nil {
		return nil, err
	}
	return userFromSnapshot(snap)
}

// Create inserts a new user record with empty course and test-result lists
// and returns its identifier.
func (s *UserService) Create(ctx context.Context, uid, email, name string) (string, error) {
	return s.store.Insert(ctx, database.CollectionUsers, map[string]any{
		"firebaseUid":     uid,
		"email":           strings.ToLower(email),
		"name":            name,
		"enrolledCourses": []string{},
		"paidCourses":     []string{},
		"testResults":     []models.TestResult{},
	})
}

// Update applies a profile patch. A nil field leaves the stored value
// untouched; an empty name is ignored rather than stored.
func (s *UserService) Update(ctx context.Context, id string, patch models.UserPatch) error {
	var ops []store.Op
	if patch.Name != nil && *patch.Name != "" {
		ops = append(ops, store.Set("name", *patch.Name))
	}
	if patch.EnrolledCourses != nil {
		ops = append(ops, store.Set("enrolledCourses", *patch.EnrolledCourses))
	}
	if patch.PaidCourses != nil {
		ops = append(ops, store.Set("paidCourses", *patch.PaidCourses))
	}
	if len(ops) == 0 {
		return nil
	}
	return s.store.Update(ctx, database.CollectionUsers, id, ops...)
}

// LinkFirebaseUID attaches a subject identifier to an existing user record,
// claiming an account created through a different sign-in method.
func (s *UserService) LinkFirebaseUID(ctx context.Context, id, uid string) error {
	return s.store.Update(ctx, database.CollectionUsers, id, store.Set("firebaseUid", uid))
}

// Enroll adds a course to the user's enrolled list, and to the paid list
// when the enrollment was purchased. Both are set-union merges, so repeated
// enrollment is idempotent.
func (s *UserService) Enroll(ctx context.Context, id, courseID string, paid bool) error {
	ops := []store.Op{store.Union("enrolledCourses", courseID)}
	if paid {
		ops = append(ops, store.Union("paidCourses", courseID))
	}
	return s.store.Update(ctx, database.CollectionUsers, id, ops...)
}

// AddTestResult records a test submission, replacing any previous result for
// the same test in place. The read-modify-write of the embedded list runs in
// a store transaction so a concurrent submission cannot lose it.
func (s *UserService) AddTestResult(ctx context.Context, id string, result models.TestResult) error {
	result.CompletedAt = time.Now()
	return s.store.Mutate(ctx, database.CollectionUsers, id, func(snap *store.Snapshot) ([]store.Op, error) {
		var user models.User
		if err := snap.Decode(&user); err != nil {
			return nil, err
		}
		results := user.TestResults
		replaced := false
		for i := range results {
			if results[i].TestID == result.TestID {
				results[i] = result
				replaced = true
				break
			}
		}
		if !replaced {
			results = append(results, result)
		}
		return []store.Op{store.Set("testResults", results)}, nil
	})
}

// Reconcile maps a verified identity to exactly one user record.
//
// The subject identifier is checked first; when unknown, an existing account
// with the same email is linked to it, and only then is a fresh record
// created. Either way the record is re-read by subject identifier before
// returning, guarding against read-after-write staleness. Concurrent
// first-time sign-ins for the same identity can still race past the email
// check and create duplicates; the store has no unique index to prevent it.
func (s *UserService) Reconcile(ctx context.Context, ident *Identity) (*models.User, error) {
	user, err := s.GetByFirebaseUID(ctx, ident.UID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	existing, err := s.GetByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.LinkFirebaseUID(ctx, existing.ID, ident.UID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.Create(ctx, ident.UID, ident.Email, displayName(ident)); err != nil {
			return nil, err
		}
	}

	user, err = s.GetByFirebaseUID(ctx, ident.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserUnavailable
	}
	return user, nil
}

// displayName picks the provided name, else the email local-part, else a
// fixed placeholder.
func displayName(ident *Identity) string {
	if ident.Name != "" {
		return ident.Name
	}
	if at := strings.Index(ident.Email, "@"); at > 0 {
		return ident.Email[:at]
	}
	return "User"
}

func userFromSnapshot(snap *store.Snapshot) (*models.User, error) {
	var user models.User
	if err := snap.Decode(&user); err != nil {
		return nil, err
	}
	user.ID = snap.ID
	return &user, nil
}
