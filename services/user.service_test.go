package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua/models"
	"lingua/store"
)

func TestReconcileCreatesNewUser(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	user, err := users.Reconcile(ctx, &Identity{UID: "uid-1", Email: "Ana@Example.COM", Name: "Ana"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "uid-1", user.FirebaseUID)
	assert.Equal(t, "ana@example.com", user.Email, "email must be stored lowercased")
	assert.Equal(t, "Ana", user.Name)
	assert.Empty(t, user.EnrolledCourses)
	assert.Empty(t, user.PaidCourses)
	assert.Empty(t, user.TestResults)
	assert.NotEmpty(t, user.ID)
}

func TestReconcileNameFallsBackToEmailLocalPart(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())

	user, err := users.Reconcile(context.Background(), &Identity{UID: "uid-1", Email: "bogdan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bogdan", user.Name)
}

func TestReconcileNameFallsBackToPlaceholder(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())

	// No local part to fall back to.
	user, err := users.Reconcile(context.Background(), &Identity{UID: "uid-1", Email: "@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User", user.Name)
}

func TestReconcileIsIdempotent(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()
	ident := &Identity{UID: "uid-1", Email: "ana@example.com", Name: "Ana"}

	first, err := users.Reconcile(ctx, ident)
	require.NoError(t, err)
	second, err := users.Reconcile(ctx, ident)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	// Still exactly one record for the identity.
	byEmail, err := users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byEmail.ID)
}

func TestReconcileLinksExistingAccountByEmail(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	// Account created through another sign-in method, not yet linked.
	id, err := users.Create(ctx, "", "ana@example.com", "Ana")
	require.NoError(t, err)

	user, err := users.Reconcile(ctx, &Identity{UID: "google-uid", Email: "Ana@example.com", Name: "Ana G"})
	require.NoError(t, err)

	assert.Equal(t, id, user.ID, "must link rather than create a second record")
	assert.Equal(t, "google-uid", user.FirebaseUID)
	assert.Equal(t, "Ana", user.Name, "historical fields stay untouched")
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	user, err := users.Reconcile(ctx, &Identity{UID: "uid-1", Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)

	enrolled := []string{"c1", "c2"}
	require.NoError(t, users.Update(ctx, user.ID, models.UserPatch{EnrolledCourses: &enrolled}))

	updated, err := users.GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, enrolled, updated.EnrolledCourses)
	assert.Equal(t, "Ana", updated.Name)

	// An empty name is ignored, not stored.
	empty := ""
	require.NoError(t, users.Update(ctx, user.ID, models.UserPatch{Name: &empty}))
	updated, err = users.GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
}

func TestEnrollIsIdempotent(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	user, err := users.Reconcile(ctx, &Identity{UID: "uid-1", Email: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, users.Enroll(ctx, user.ID, "course-1", false))
	require.NoError(t, users.Enroll(ctx, user.ID, "course-1", true))

	updated, err := users.GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"course-1"}, updated.EnrolledCourses)
	assert.Equal(t, []string{"course-1"}, updated.PaidCourses)
}

func TestAddTestResultReplacesSameTest(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	user, err := users.Reconcile(ctx, &Identity{UID: "uid-1", Email: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, users.AddTestResult(ctx, user.ID, models.TestResult{TestID: "t1", Score: 5, MaxScore: 10}))
	require.NoError(t, users.AddTestResult(ctx, user.ID, models.TestResult{TestID: "t2", Score: 7, MaxScore: 10}))
	require.NoError(t, users.AddTestResult(ctx, user.ID, models.TestResult{TestID: "t1", Score: 9, MaxScore: 10}))

	updated, err := users.GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, updated.TestResults, 2, "resubmission must replace, not append")

	assert.Equal(t, "t1", updated.TestResults[0].TestID, "replacement keeps the list position")
	assert.Equal(t, float64(9), updated.TestResults[0].Score)
	assert.Equal(t, "t2", updated.TestResults[1].TestID)
	assert.False(t, updated.TestResults[0].CompletedAt.IsZero())
}
