package diagController_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua/config"
	diagController "lingua/controllers/diag"
	"lingua/database"
	"lingua/store"
)

func probe(t *testing.T, st store.Store) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/test-firestore", diagController.TestFirestore(st, &config.Config{FirebaseProjectID: "demo"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/test-firestore", nil))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestProbeReadsEmptyCollection(t *testing.T) {
	status, body := probe(t, store.NewMemoryStore())

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "read_collection", body["test"])
	assert.Equal(t, float64(0), body["usersCount"])
	assert.Equal(t, "demo", body["projectId"])
}

func TestProbeCountsAnExistingUser(t *testing.T) {
	st := store.NewMemoryStore()
	_, err := st.Insert(context.Background(), database.CollectionUsers, map[string]any{
		"email": "ana@example.com",
	})
	require.NoError(t, err)

	status, body := probe(t, st)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["usersCount"])
}
