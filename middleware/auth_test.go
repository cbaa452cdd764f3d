package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingua/services"
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

func authTestApp(verifier services.TokenVerifier) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(verifier), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uid": c.Locals("firebaseUid")})
	})
	return app
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	app := authTestApp(&stubVerifier{})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	app := authTestApp(&stubVerifier{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	app := authTestApp(&stubVerifier{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthPassesSubject(t *testing.T) {
	verifier := &stubVerifier{tokens: map[string]*services.Identity{
		"good": {UID: "uid-1"},
	}}
	app := authTestApp(verifier)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
