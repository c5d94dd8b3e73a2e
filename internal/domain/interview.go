package domain

import (
	"fmt"
	"regexp"
	"time"
)

// InterviewType is the canonical interview category.
type InterviewType string

const (
	InterviewBehavioral InterviewType = "Behavioral"
	InterviewTechnical  InterviewType = "Technical"
	InterviewMixed      InterviewType = "Mixed"
)

var mixedPattern = regexp.MustCompile(`(?i)mix`)

// NormalizeInterviewType folds stored type labels onto the canonical set.
// Labels that are not recognised are returned unchanged.
func NormalizeInterviewType(raw string) InterviewType {
	if mixedPattern.MatchString(raw) {
		return InterviewMixed
	}
	return InterviewType(raw)
}

// Interview is a mock interview generated for a user.
type Interview struct {
	ID        string
	UserID    string
	Role      string
	Level     string
	Type      string
	TechStack []string
	Finalized bool
	CreatedAt time.Time
}

// Feedback is the scored assessment of a completed interview.
type Feedback struct {
	ID              string
	InterviewID     string
	UserID          string
	TotalScore      int
	FinalAssessment string
	CreatedAt       time.Time
}

const (
	cardDateLayout        = "Jan 2, 2006"
	cardScorePlaceholder  = "---"
	cardAssessmentPending = "You haven't taken this interview yet. Take it now to improve your skills."
)

// InterviewCard is the dashboard view of an interview.
type InterviewCard struct {
	ID          string        `json:"id"`
	Role        string        `json:"role"`
	Type        InterviewType `json:"type"`
	TechStack   []string      `json:"techStack"`
	Date        string        `json:"date"`
	Score       string        `json:"score"`
	Assessment  string        `json:"assessment"`
	Link        string        `json:"link"`
	ActionLabel string        `json:"actionLabel"`
	HasFeedback bool          `json:"hasFeedback"`
}

// NewInterviewCard builds the card for an interview. feedback may be nil.
func NewInterviewCard(iv Interview, feedback *Feedback, now time.Time) InterviewCard {
	card := InterviewCard{
		ID:          iv.ID,
		Role:        iv.Role,
		Type:        NormalizeInterviewType(iv.Type),
		TechStack:   iv.TechStack,
		Score:       cardScorePlaceholder + "/100",
		Assessment:  cardAssessmentPending,
		Link:        "/interview/" + iv.ID,
		ActionLabel: "View Interview",
	}
	if card.TechStack == nil {
		card.TechStack = []string{}
	}

	date := now
	switch {
	case feedback != nil && !feedback.CreatedAt.IsZero():
		date = feedback.CreatedAt
	case !iv.CreatedAt.IsZero():
		date = iv.CreatedAt
	}
	card.Date = date.Format(cardDateLayout)

	if feedback != nil {
		card.HasFeedback = true
		if feedback.TotalScore > 0 {
			card.Score = fmt.Sprintf("%d/100", feedback.TotalScore)
		}
		if feedback.FinalAssessment != "" {
			card.Assessment = feedback.FinalAssessment
		}
		card.Link = "/interview/" + iv.ID + "/feedback"
		card.ActionLabel = "Check Feedback"
	}
	return card
}

// Dashboard is the home page payload.
type Dashboard struct {
	UserInterviews   []InterviewCard `json:"userInterviews"`
	LatestInterviews []InterviewCard `json:"latestInterviews"`
}
