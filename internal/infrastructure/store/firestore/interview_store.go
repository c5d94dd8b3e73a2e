package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"interview-hub/internal/domain"

	"cloud.google.com/go/firestore"
)

type interviewDocument struct {
	UserID    string   `firestore:"userId"`
	Role      string   `firestore:"role"`
	Level     string   `firestore:"level"`
	Type      string   `firestore:"type"`
	TechStack []string `firestore:"techstack"`
	Finalized bool     `firestore:"finalized"`
	CreatedAt string   `firestore:"createdAt"`
}

type feedbackDocument struct {
	InterviewID     string `firestore:"interviewId"`
	UserID          string `firestore:"userId"`
	TotalScore      int    `firestore:"totalScore"`
	FinalAssessment string `firestore:"finalAssessment"`
	CreatedAt       string `firestore:"createdAt"`
}

// parseTimestamp reads the ISO-8601 strings the web client stores. Unparseable values become zero.
func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d interviewDocument) toDomain(id string) domain.Interview {
	return domain.Interview{
		ID:        id,
		UserID:    d.UserID,
		Role:      d.Role,
		Level:     d.Level,
		Type:      d.Type,
		TechStack: d.TechStack,
		Finalized: d.Finalized,
		CreatedAt: parseTimestamp(d.CreatedAt),
	}
}

func (d feedbackDocument) toDomain(id string) *domain.Feedback {
	return &domain.Feedback{
		ID:              id,
		InterviewID:     d.InterviewID,
		UserID:          d.UserID,
		TotalScore:      d.TotalScore,
		FinalAssessment: d.FinalAssessment,
		CreatedAt:       parseTimestamp(d.CreatedAt),
	}
}

// InterviewStore implements domain.InterviewStore on Cloud Firestore.
type InterviewStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewInterviewStore creates a new Firestore interview store.
func NewInterviewStore(client *firestore.Client, logger *slog.Logger) *InterviewStore {
	return &InterviewStore{
		client: client,
		logger: logger.With("component", "interview_store"),
	}
}

// ListInterviewsByUser returns the user's interviews, newest first.
func (s *InterviewStore) ListInterviewsByUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	q := s.client.Collection("interviews").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return s.list(ctx, q)
}

// ListLatestInterviews returns finalized interviews created by other users, newest first.
func (s *InterviewStore) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]domain.Interview, error) {
	q := s.client.Collection("interviews").
		OrderBy("createdAt", firestore.Desc).
		Where("finalized", "==", true).
		Where("userId", "!=", excludeUserID).
		Limit(limit)
	return s.list(ctx, q)
}

func (s *InterviewStore) list(ctx context.Context, q firestore.Query) ([]domain.Interview, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	interviews := make([]domain.Interview, 0, len(snaps))
	for _, snap := range snaps {
		var doc interviewDocument
		if err := snap.DataTo(&doc); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed interview document", "interview_id", snap.Ref.ID, "error", err)
			continue
		}
		interviews = append(interviews, doc.toDomain(snap.Ref.ID))
	}
	return interviews, nil
}

// GetFeedback returns the feedback the user received for the interview.
func (s *InterviewStore) GetFeedback(ctx context.Context, interviewID, userID string) (*domain.Feedback, error) {
	snaps, err := s.client.Collection("feedback").
		Where("interviewId", "==", interviewID).
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(snaps) == 0 {
		return nil, domain.ErrFeedbackNotFound
	}

	var doc feedbackDocument
	if err := snaps[0].DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode feedback: %w", domain.ErrStoreUnavailable, err)
	}
	return doc.toDomain(snaps[0].Ref.ID), nil
}
