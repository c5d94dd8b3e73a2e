package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"interview-hub/internal/domain"

	"golang.org/x/sync/errgroup"
)

// ListDashboard assembles the home page for a signed-in user.
type ListDashboard struct {
	interviews  domain.InterviewStore
	latestLimit int
	now         func() time.Time
	logger      *slog.Logger
}

// NewListDashboard creates a new ListDashboard usecase.
func NewListDashboard(s domain.InterviewStore, latestLimit int, l *slog.Logger) *ListDashboard {
	return &ListDashboard{interviews: s, latestLimit: latestLimit, now: time.Now, logger: l}
}

// Execute loads the user's interviews and the latest interviews by others in parallel.
func (uc *ListDashboard) Execute(ctx context.Context, principal *domain.Principal) (*domain.Dashboard, error) {
	var own, latest []domain.Interview

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		own, err = uc.interviews.ListInterviewsByUser(gCtx, principal.ID)
		if err != nil {
			return fmt.Errorf("list user interviews: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		latest, err = uc.interviews.ListLatestInterviews(gCtx, principal.ID, uc.latestLimit)
		if err != nil {
			return fmt.Errorf("list latest interviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.ErrorContext(ctx, "failed to load dashboard", "user_id", principal.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	now := uc.now()
	return &domain.Dashboard{
		UserInterviews:   uc.cards(ctx, own, principal.ID, now),
		LatestInterviews: uc.cards(ctx, latest, principal.ID, now),
	}, nil
}

// cards attaches the principal's feedback to each interview. A failed feedback
// lookup degrades that card to the no-feedback view.
func (uc *ListDashboard) cards(ctx context.Context, interviews []domain.Interview, userID string, now time.Time) []domain.InterviewCard {
	feedback := make([]*domain.Feedback, len(interviews))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, iv := range interviews {
		g.Go(func() error {
			fb, err := uc.interviews.GetFeedback(gCtx, iv.ID, userID)
			if err != nil {
				if !errors.Is(err, domain.ErrFeedbackNotFound) {
					uc.logger.WarnContext(gCtx, "failed to load feedback", "interview_id", iv.ID, "error", err)
				}
				return nil
			}
			feedback[i] = fb
			return nil
		})
	}
	_ = g.Wait()

	cards := make([]domain.InterviewCard, 0, len(interviews))
	for i, iv := range interviews {
		cards = append(cards, domain.NewInterviewCard(iv, feedback[i], now))
	}
	return cards
}
