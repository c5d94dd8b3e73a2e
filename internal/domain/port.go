package domain

import (
	"context"
	"time"
)

// IdentityProvider verifies credentials and issues session cookies.
type IdentityProvider interface {
	// VerifyToken checks a bearer token and returns the account identifier it belongs to.
	VerifyToken(ctx context.Context, bearerToken string) (string, error)
	CreateSessionCookie(ctx context.Context, bearerToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*SessionClaims, error)
	// GetAccountByEmail returns ErrAccountNotFound when no identity uses the email.
	GetAccountByEmail(ctx context.Context, email string) (*IdentityRecord, error)
}

// AccountStore persists account profile documents.
type AccountStore interface {
	// GetAccount returns ErrAccountNotFound when the document is absent.
	GetAccount(ctx context.Context, id string) (*Account, error)
	// CreateAccount fails with ErrAccountExists if the id is taken and
	// ErrDuplicateEmail if the backend enforces email uniqueness.
	CreateAccount(ctx context.Context, account Account) error
}

// InterviewStore reads interview and feedback documents.
type InterviewStore interface {
	ListInterviewsByUser(ctx context.Context, userID string) ([]Interview, error)
	ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]Interview, error)
	// GetFeedback returns ErrFeedbackNotFound when the interview has no feedback for the user.
	GetFeedback(ctx context.Context, interviewID, userID string) (*Feedback, error)
}

// CookieJar reads and writes cookies for the current request.
// Writes are visible to later reads within the same request.
type CookieJar interface {
	Get(name string) (string, bool)
	Set(cookie Cookie)
	// Delete expires the cookie. Attributes other than the value must match the ones it was set with.
	Delete(cookie Cookie)
}

// OutcomeRecorder counts action outcomes for monitoring.
type OutcomeRecorder interface {
	RecordAction(action string, code ResultCode)
	RecordResolution(resolved bool)
}
