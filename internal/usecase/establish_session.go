package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"interview-hub/internal/domain"
)

// EstablishSession exchanges a verified bearer token for a session cookie.
type EstablishSession struct {
	provider     domain.IdentityProvider
	secureCookie bool
	logger       *slog.Logger
}

// NewEstablishSession creates a new EstablishSession usecase.
// secureCookie should be true only in production deployments.
func NewEstablishSession(p domain.IdentityProvider, secureCookie bool, l *slog.Logger) *EstablishSession {
	return &EstablishSession{provider: p, secureCookie: secureCookie, logger: l}
}

// Execute mints the cookie and writes it to the jar.
func (uc *EstablishSession) Execute(ctx context.Context, jar domain.CookieJar, bearerToken string) error {
	value, err := uc.provider.CreateSessionCookie(ctx, bearerToken, domain.SessionDuration)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to create session cookie", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}

	jar.Set(domain.SessionCookie(value, uc.secureCookie))
	return nil
}
