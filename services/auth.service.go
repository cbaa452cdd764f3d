package services

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Identity is what the identity provider attests about an authenticated
// principal: its stable subject identifier plus the email and display-name
// claims, either of which may be empty.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier exchanges a bearer credential for the identity it attests.
// All cryptographic validation is delegated to the identity service.
type TokenVerifier interface {
	// Verify returns the identity the token attests, or an error when the
	// token is malformed, expired, or fails the provider's checks.
	Verify(ctx context.Context, idToken string) (*Identity, error)

	// LookupUser fetches the provider's user record for a subject
	// identifier. Registration uses it when token claims are incomplete.
	LookupUser(ctx context.Context, uid string) (*Identity, error)
}

// FirebaseVerifier verifies ID tokens against Firebase Auth.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	ident := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		ident.Name = name
	}
	return ident, nil
}

func (v *FirebaseVerifier) LookupUser(ctx context.Context, uid string) (*Identity, error) {
	record, err := v.client.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &Identity{UID: uid, Email: record.Email, Name: record.DisplayName}, nil
}
