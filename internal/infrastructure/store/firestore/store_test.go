package firestore

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"interview-hub/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewDocument_ToDomain(t *testing.T) {
	doc := interviewDocument{
		UserID:    "u1",
		Role:      "Frontend Developer",
		Level:     "Junior",
		Type:      "Mixed",
		TechStack: []string{"react", "typescript"},
		Finalized: true,
		CreatedAt: "2025-03-01T10:15:30.123Z",
	}

	iv := doc.toDomain("iv-1")

	assert.Equal(t, "iv-1", iv.ID)
	assert.Equal(t, []string{"react", "typescript"}, iv.TechStack)
	assert.Equal(t, time.Date(2025, time.March, 1, 10, 15, 30, 123000000, time.UTC), iv.CreatedAt)
}

func TestParseTimestamp_Invalid(t *testing.T) {
	assert.True(t, parseTimestamp("").IsZero())
	assert.True(t, parseTimestamp("yesterday").IsZero())
}

func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "interview-hub-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestAccountStore_Emulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	store := NewAccountStore(client, slog.Default())
	id := "u-" + uuid.NewString()

	_, err := store.GetAccount(ctx, id)
	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))

	require.NoError(t, store.CreateAccount(ctx, domain.Account{ID: id, Name: "Ann", Email: "a@x.com"}))

	got, err := store.GetAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &domain.Account{ID: id, Name: "Ann", Email: "a@x.com"}, got)

	err = store.CreateAccount(ctx, domain.Account{ID: id, Name: "Ann", Email: "a@x.com"})
	assert.True(t, errors.Is(err, domain.ErrAccountExists))
}

func TestInterviewStore_Emulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	store := NewInterviewStore(client, slog.Default())
	owner := "u-" + uuid.NewString()

	ref := client.Collection("interviews").NewDoc()
	_, err := ref.Create(ctx, map[string]any{
		"userId":    owner,
		"role":      "SRE",
		"type":      "Technical",
		"techstack": []string{"go"},
		"finalized": true,
		"createdAt": "2025-01-02T03:04:05Z",
	})
	require.NoError(t, err)

	_, err = client.Collection("feedback").NewDoc().Create(ctx, map[string]any{
		"interviewId":     ref.ID,
		"userId":          owner,
		"totalScore":      64,
		"finalAssessment": "Keep practicing.",
		"createdAt":       "2025-01-03T03:04:05Z",
	})
	require.NoError(t, err)

	own, err := store.ListInterviewsByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, ref.ID, own[0].ID)

	fb, err := store.GetFeedback(ctx, ref.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 64, fb.TotalScore)

	_, err = store.GetFeedback(ctx, ref.ID, "someone-else")
	assert.True(t, errors.Is(err, domain.ErrFeedbackNotFound))
}
