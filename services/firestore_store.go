package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"faqbot/config"
	"faqbot/models"
)

// FirestoreStore appends escalations to a Firestore collection
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore initializes a Firebase app from a service account JSON
// blob and opens its Firestore client.
func NewFirestoreStore(ctx context.Context, credentials []byte, collection string) (*FirestoreStore, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening firestore client: %w", err)
	}

	return NewFirestoreStoreWithClient(client, collection), nil
}

// NewFirestoreStoreWithClient wraps an existing client
func NewFirestoreStoreWithClient(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) Append(ctx context.Context, q models.EscalatedQuestion) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, q)
	if err != nil {
		return "", fmt.Errorf("adding document to %s: %w", s.collection, err)
	}
	return ref.ID, nil
}

// List queries by status ordered on created_at, which needs the composite
// index (status ASC, created_at DESC) on the collection.
func (s *FirestoreStore) List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error) {
	docs, err := s.client.Collection(s.collection).
		Where("status", "==", string(status)).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.collection, err)
	}

	records := make([]models.EscalatedQuestion, 0, len(docs))
	for _, doc := range docs {
		var q models.EscalatedQuestion
		if err := doc.DataTo(&q); err != nil {
			return nil, fmt.Errorf("decoding document %s: %w", doc.Ref.ID, err)
		}
		q.ID = doc.Ref.ID
		records = append(records, q)
	}
	return records, nil
}

func (s *FirestoreStore) Name() string {
	return config.BackendFirestore
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
