package usecase

import (
	"context"
	"errors"
	"log/slog"

	"interview-hub/internal/domain"
)

// ResolvePrincipal turns the session cookie into the current user.
type ResolvePrincipal struct {
	provider domain.IdentityProvider
	accounts domain.AccountStore
	recorder domain.OutcomeRecorder
	logger   *slog.Logger
}

// NewResolvePrincipal creates a new ResolvePrincipal usecase.
func NewResolvePrincipal(p domain.IdentityProvider, a domain.AccountStore, r domain.OutcomeRecorder, l *slog.Logger) *ResolvePrincipal {
	return &ResolvePrincipal{provider: p, accounts: a, recorder: recorderOrNoop(r), logger: l}
}

// Execute returns the principal for the request, or nil when there is none.
// Every failure along the way resolves to nil.
func (uc *ResolvePrincipal) Execute(ctx context.Context, jar domain.CookieJar) *domain.Principal {
	p := uc.resolve(ctx, jar)
	uc.recorder.RecordResolution(p != nil)
	return p
}

// IsAuthenticated reports whether the request carries a usable session.
func (uc *ResolvePrincipal) IsAuthenticated(ctx context.Context, jar domain.CookieJar) bool {
	return uc.Execute(ctx, jar) != nil
}

func (uc *ResolvePrincipal) resolve(ctx context.Context, jar domain.CookieJar) *domain.Principal {
	cookie, ok := jar.Get(domain.SessionCookieName)
	if !ok || cookie == "" {
		return nil
	}

	claims, err := uc.provider.VerifySessionCookie(ctx, cookie, true)
	if err != nil {
		uc.logger.DebugContext(ctx, "session cookie rejected", "error", err)
		return nil
	}

	account, err := uc.accounts.GetAccount(ctx, claims.UID)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			uc.logger.WarnContext(ctx, "failed to load account for session", "user_id", claims.UID, "error", err)
		}
		return nil
	}

	return domain.NewPrincipal(claims.UID, account)
}
