package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"lingua/config"
)

// Collection names in Firestore.
const (
	CollectionUsers    = "users"
	CollectionCourses  = "courses"
	CollectionProgress = "userProgress"
)

// Clients holds the process-wide Firebase connections. They are created once
// at startup and injected into the services that need them.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Connect initializes the Firebase Admin app from the service account
// credentials in cfg and opens the Firestore and Auth clients.
func Connect(ctx context.Context, cfg *config.Config) (*Clients, error) {
	serviceAccount, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.FirebaseProjectID,
		"client_email": cfg.FirebaseClientEmail,
		"private_key":  cfg.FirebasePrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal service account: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID},
		option.WithCredentialsJSON(serviceAccount))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}

	log.Printf("Connected to Firebase project %s", cfg.FirebaseProjectID)
	return &Clients{Firestore: firestoreClient, Auth: authClient}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() {
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			log.Printf("Error closing Firestore client: %v", err)
		}
	}
}
