package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"interview-hub/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type interviewDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Role      string    `bson:"role"`
	Level     string    `bson:"level"`
	Type      string    `bson:"type"`
	TechStack []string  `bson:"techstack"`
	Finalized bool      `bson:"finalized"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d interviewDocument) toDomain() domain.Interview {
	return domain.Interview{
		ID:        d.ID,
		UserID:    d.UserID,
		Role:      d.Role,
		Level:     d.Level,
		Type:      d.Type,
		TechStack: d.TechStack,
		Finalized: d.Finalized,
		CreatedAt: d.CreatedAt,
	}
}

type feedbackDocument struct {
	ID              string    `bson:"_id"`
	InterviewID     string    `bson:"interviewId"`
	UserID          string    `bson:"userId"`
	TotalScore      int       `bson:"totalScore"`
	FinalAssessment string    `bson:"finalAssessment"`
	CreatedAt       time.Time `bson:"createdAt"`
}

// InterviewStore implements domain.InterviewStore for MongoDB.
type InterviewStore struct {
	interviews *mongo.Collection
	feedback   *mongo.Collection
	logger     *slog.Logger
}

// NewInterviewStore creates a new MongoDB interview store.
func NewInterviewStore(db *mongo.Database, logger *slog.Logger) *InterviewStore {
	return &InterviewStore{
		interviews: db.Collection("interviews"),
		feedback:   db.Collection("feedback"),
		logger:     logger.With("component", "interview_store"),
	}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// ListInterviewsByUser returns the user's interviews, newest first.
func (s *InterviewStore) ListInterviewsByUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	return s.find(ctx, bson.D{{Key: "userId", Value: userID}}, options.Find().SetSort(newestFirst))
}

// ListLatestInterviews returns finalized interviews created by other users, newest first.
func (s *InterviewStore) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]domain.Interview, error) {
	filter := bson.D{
		{Key: "finalized", Value: true},
		{Key: "userId", Value: bson.D{{Key: "$ne", Value: excludeUserID}}},
	}
	return s.find(ctx, filter, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (s *InterviewStore) find(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]domain.Interview, error) {
	cursor, err := s.interviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var docs []interviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	interviews := make([]domain.Interview, 0, len(docs))
	for _, d := range docs {
		interviews = append(interviews, d.toDomain())
	}
	return interviews, nil
}

// GetFeedback returns the most recent feedback the user received for the interview.
func (s *InterviewStore) GetFeedback(ctx context.Context, interviewID, userID string) (*domain.Feedback, error) {
	filter := bson.D{
		{Key: "interviewId", Value: interviewID},
		{Key: "userId", Value: userID},
	}

	var doc feedbackDocument
	err := s.feedback.FindOne(ctx, filter, options.FindOne().SetSort(newestFirst)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return &domain.Feedback{
		ID:              doc.ID,
		InterviewID:     doc.InterviewID,
		UserID:          doc.UserID,
		TotalScore:      doc.TotalScore,
		FinalAssessment: doc.FinalAssessment,
		CreatedAt:       doc.CreatedAt,
	}, nil
}
