package usecase

import (
	"context"
	"log/slog"

	"interview-hub/internal/domain"
)

// TerminateSession signs the user out by dropping the session cookie.
type TerminateSession struct {
	secureCookie bool
	logger       *slog.Logger
}

// NewTerminateSession creates a new TerminateSession usecase.
// secureCookie must match the value given to NewEstablishSession.
func NewTerminateSession(secureCookie bool, l *slog.Logger) *TerminateSession {
	return &TerminateSession{secureCookie: secureCookie, logger: l}
}

// Execute deletes the session cookie. Calling it without a session is a no-op.
func (uc *TerminateSession) Execute(ctx context.Context, jar domain.CookieJar) {
	if _, ok := jar.Get(domain.SessionCookieName); ok {
		uc.logger.DebugContext(ctx, "session cookie cleared")
	}
	jar.Delete(domain.SessionCookie("", uc.secureCookie))
}
