package userController_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua/models"
	"lingua/routers/userRoutes"
	"lingua/services"
	"lingua/store"
)

type stubVerifier struct {
	tokens map[string]*services.Identity
}

func (s *stubVerifier) Verify(_ context.Context, idToken string) (*services.Identity, error) {
	if ident, ok := s.tokens[idToken]; ok {
		return ident, nil
	}
	return nil, errors.New("invalid token")
}

func (s *stubVerifier) LookupUser(context.Context, string) (*services.Identity, error) {
	return nil, errors.New("not implemented")
}

// countingStore wraps a Store and counts data accesses, so tests can prove
// unauthenticated requests never reach the store.
type countingStore struct {
	store.Store
	calls int
}

func (c *countingStore) FindOne(ctx context.Context, collection string, filters ...store.Filter) (*store.Snapshot, error) {
	c.calls++
	return c.Store.FindOne(ctx, collection, filters...)
}

func (c *countingStore) FindAll(ctx context.Context, collection string, filters ...store.Filter) ([]store.Snapshot, error) {
	c.calls++
	return c.Store.FindAll(ctx, collection, filters...)
}

func (c *countingStore) Get(ctx context.Context, collection, id string) (*store.Snapshot, error) {
	c.calls++
	return c.Store.Get(ctx, collection, id)
}

type env struct {
	app      *fiber.App
	store    *countingStore
	users    *services.UserService
	courses  *services.CourseService
	progress *services.ProgressService
}

func setup(t *testing.T) *env {
	t.Helper()
	st := &countingStore{Store: store.NewMemoryStore()}
	users := services.NewUserService(st)
	courses := services.NewCourseService(st)
	progress := services.NewProgressService(st)
	verifier := &stubVerifier{tokens: map[string]*services.Identity{
		"ana-token": {UID: "uid-ana", Email: "ana@example.com"},
	}}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app, users, courses, progress, verifier)

	_, err := users.Create(context.Background(), "uid-ana", "ana@example.com", "Ana")
	require.NoError(t, err)

	return &env{app: app, store: st, users: users, courses: courses, progress: progress}
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestMeWithoutTokenNeverReachesStore(t *testing.T) {
	e := setup(t)
	before := e.store.calls

	req := httptest.NewRequest("GET", "/users/me", nil)
	resp, err := e.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, before, e.store.calls, "rejected request must not touch the store")
}

func TestMeReturnsProfile(t *testing.T) {
	e := setup(t)

	resp, body := request(t, e.app, "GET", "/users/me", "ana-token", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "Ana", user["name"])
	assert.Equal(t, []any{}, user["enrolledCourses"])
	assert.Equal(t, []any{}, user["testResults"])
}

func TestMeUnknownSubject(t *testing.T) {
	e := setup(t)
	verifier := &stubVerifier{tokens: map[string]*services.Identity{
		"ghost-token": {UID: "uid-ghost"},
	}}
	app := fiber.New()
	userRoutes.SetupUserRoutes(app, e.users, e.courses, e.progress, verifier)

	resp, body := request(t, app, "GET", "/users/me", "ghost-token", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])
}

func TestUpdateProfile(t *testing.T) {
	e := setup(t)

	resp, body := request(t, e.app, "PUT", "/users/me", "ana-token", fiber.Map{
		"name":            "Ana Marie",
		"enrolledCourses": []string{"c1"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "Ana Marie", user["name"])
	assert.Equal(t, []any{"c1"}, user["enrolledCourses"])
}

func TestAddTestResultValidation(t *testing.T) {
	e := setup(t)

	resp, body := request(t, e.app, "POST", "/users/me/test-results", "ana-token", fiber.Map{
		"testId": "t1",
		"score":  5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "testId, score, and maxScore are required", body["error"])
}

func TestAddTestResultReplacesResubmission(t *testing.T) {
	e := setup(t)

	resp, _ := request(t, e.app, "POST", "/users/me/test-results", "ana-token", fiber.Map{
		"testId": "t1", "score": 5, "maxScore": 10,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := request(t, e.app, "POST", "/users/me/test-results", "ana-token", fiber.Map{
		"testId": "t1", "score": 9, "maxScore": 10, "answers": fiber.Map{"q1": "a"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	results := body["user"].(map[string]any)["testResults"].([]any)
	require.Len(t, results, 1, "resubmission must replace the existing entry")

	entry := results[0].(map[string]any)
	assert.Equal(t, float64(9), entry["score"])
	assert.NotEmpty(t, entry["completedAt"])
}

func TestEnrollUnknownCourse(t *testing.T) {
	e := setup(t)

	resp, body := request(t, e.app, "POST", "/users/me/courses", "ana-token", fiber.Map{
		"courseId": "nope",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found", body["error"])
}

func TestEnrollIsIdempotentAndCountsOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	courseID, err := e.courses.Create(ctx, models.Course{Title: "English A1"})
	require.NoError(t, err)

	resp, _ := request(t, e.app, "POST", "/users/me/courses", "ana-token", fiber.Map{
		"courseId": courseID, "paid": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := request(t, e.app, "POST", "/users/me/courses", "ana-token", fiber.Map{
		"courseId": courseID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, []any{courseID}, user["enrolledCourses"])
	assert.Equal(t, []any{courseID}, user["paidCourses"])

	course, err := e.courses.GetByID(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), course.StudentsCount, "re-enrolling must not bump the counter")
}
