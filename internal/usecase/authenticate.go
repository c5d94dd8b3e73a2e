package usecase

import (
	"context"
	"errors"
	"log/slog"

	"interview-hub/internal/domain"
)

const (
	msgInvalidEmail       = "Invalid email"
	msgInvalidCredentials = "Invalid credentials"
	msgAccountMissing     = "User does not exist. Create an account."
	msgSignedIn           = "Logged in successfully."
	msgSignInFailed       = "Failed to log into account. Please try again."
)

// AuthenticateInput is the sign-in request after the client obtained a bearer token.
type AuthenticateInput struct {
	Email       string
	BearerToken string
}

// Authenticate signs a user in and starts their session.
type Authenticate struct {
	provider  domain.IdentityProvider
	establish *EstablishSession
	recorder  domain.OutcomeRecorder
	logger    *slog.Logger
}

// NewAuthenticate creates a new Authenticate usecase.
func NewAuthenticate(p domain.IdentityProvider, es *EstablishSession, r domain.OutcomeRecorder, l *slog.Logger) *Authenticate {
	return &Authenticate{provider: p, establish: es, recorder: recorderOrNoop(r), logger: l}
}

// Execute looks the account up by email, checks that the token belongs to it and sets the session cookie.
// A failure to set the cookie is reported in the result's Session field and does not fail the sign-in.
func (uc *Authenticate) Execute(ctx context.Context, jar domain.CookieJar, in AuthenticateInput) domain.AuthenticateResult {
	result := uc.authenticate(ctx, jar, in)
	uc.recorder.RecordAction("authenticate", result.Code)
	return result
}

func (uc *Authenticate) authenticate(ctx context.Context, jar domain.CookieJar, in AuthenticateInput) domain.AuthenticateResult {
	fail := func(code domain.ResultCode, msg string) domain.AuthenticateResult {
		return domain.AuthenticateResult{ActionResult: domain.Failed(code, msg), Session: domain.SessionNotAttempted}
	}

	if in.Email == "" {
		return fail(domain.CodeInvalidInput, msgInvalidEmail)
	}
	if in.BearerToken == "" {
		return fail(domain.CodeInvalidInput, msgInvalidCredentials)
	}

	record, err := uc.provider.GetAccountByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fail(domain.CodeNotFound, msgAccountMissing)
		}
		uc.logger.ErrorContext(ctx, "failed to look up account by email",
			"email", maskEmail(in.Email), "error", err)
		return fail(domain.CodeAuthFailure, msgSignInFailed)
	}

	uid, err := uc.provider.VerifyToken(ctx, in.BearerToken)
	if err != nil {
		uc.logger.WarnContext(ctx, "bearer token rejected", "error", err)
		return fail(domain.CodeAuthFailure, msgSignInFailed)
	}
	if uid != record.UID {
		uc.logger.WarnContext(ctx, "bearer token does not match account",
			"user_id", record.UID, "error", domain.ErrIdentityMismatch)
		return fail(domain.CodeAuthFailure, msgSignInFailed)
	}

	result := domain.AuthenticateResult{
		ActionResult: domain.Succeeded(msgSignedIn),
		Session:      domain.SessionEstablished,
	}
	if err := uc.establish.Execute(ctx, jar, in.BearerToken); err != nil {
		result.Session = domain.SessionNotEstablished
		return result
	}

	uc.logger.InfoContext(ctx, "user signed in", "user_id", record.UID)
	return result
}
