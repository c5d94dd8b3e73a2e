package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"interview-hub/internal/domain"

	"github.com/jackc/pgx/v5"
)

const interviewColumns = `id, user_id, role, level, type, techstack, finalized, created_at`

// InterviewStore implements domain.InterviewStore for PostgreSQL.
type InterviewStore struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewInterviewStore creates a new PostgreSQL interview store.
func NewInterviewStore(db DatabaseIface, logger *slog.Logger) *InterviewStore {
	return &InterviewStore{
		db:     db,
		logger: logger.With("component", "interview_store"),
	}
}

// ListInterviewsByUser returns the user's interviews, newest first.
func (s *InterviewStore) ListInterviewsByUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, userID)
}

// ListLatestInterviews returns finalized interviews created by other users, newest first.
func (s *InterviewStore) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE finalized = true AND user_id <> $1
		ORDER BY created_at DESC
		LIMIT $2`
	return s.list(ctx, query, excludeUserID, limit)
}

func (s *InterviewStore) list(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	interviews := make([]domain.Interview, 0)
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.Role, &iv.Level, &iv.Type, &iv.TechStack, &iv.Finalized, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return interviews, nil
}

// GetFeedback returns the most recent feedback the user received for the interview.
func (s *InterviewStore) GetFeedback(ctx context.Context, interviewID, userID string) (*domain.Feedback, error) {
	const query = `SELECT id, interview_id, user_id, total_score, final_assessment, created_at
		FROM feedback WHERE interview_id = $1 AND user_id = $2
		ORDER BY created_at DESC LIMIT 1`

	var fb domain.Feedback
	err := s.db.QueryRow(ctx, query, interviewID, userID).
		Scan(&fb.ID, &fb.InterviewID, &fb.UserID, &fb.TotalScore, &fb.FinalAssessment, &fb.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &fb, nil
}
