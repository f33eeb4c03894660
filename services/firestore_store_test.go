package services

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/models"
)

// newTestFirestoreStore talks to the emulator at FIRESTORE_EMULATOR_HOST
func newTestFirestoreStore(t *testing.T) *FirestoreStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "demo-faqbot")
	require.NoError(t, err)

	s := NewFirestoreStoreWithClient(client, "unanswered_questions_test")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFirestoreStore_Append(t *testing.T) {
	s := newTestFirestoreStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, models.NewEscalatedQuestion("Do you ship to Mars?"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	require.NoError(t, err)

	var got models.EscalatedQuestion
	require.NoError(t, snap.DataTo(&got))
	assert.Equal(t, "Do you ship to Mars?", got.Question)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Empty(t, got.ID)
}

func TestFirestoreStore_ListNewestFirst(t *testing.T) {
	s := newTestFirestoreStore(t)
	ctx := context.Background()

	older := models.NewEscalatedQuestion("older")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	olderID, err := s.Append(ctx, older)
	require.NoError(t, err)
	newerID, err := s.Append(ctx, models.NewEscalatedQuestion("newer"))
	require.NoError(t, err)

	records, err := s.List(ctx, models.StatusPending, 500)
	require.NoError(t, err)

	positions := map[string]int{}
	for i, r := range records {
		positions[r.ID] = i
	}
	require.Contains(t, positions, olderID)
	require.Contains(t, positions, newerID)
	assert.Less(t, positions[newerID], positions[olderID])
}
