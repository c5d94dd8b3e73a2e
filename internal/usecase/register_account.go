package usecase

import (
	"context"
	"errors"
	"log/slog"

	"interview-hub/internal/domain"
)

const (
	msgInvalidUserData   = "Invalid user data"
	msgAccountExists     = "User already exists. Please sign in."
	msgAccountCreated    = "Account created successfully. Please sign in."
	msgEmailInUse        = "This email is already in use"
	msgCreateAccountFail = "Failed to create account. Please try again."
)

// RegisterInput carries the sign-up form after the client created the provider identity.
type RegisterInput struct {
	UID   string
	Name  string
	Email string
}

// RegisterAccount persists the profile document for a newly created identity.
type RegisterAccount struct {
	accounts domain.AccountStore
	recorder domain.OutcomeRecorder
	logger   *slog.Logger
}

// NewRegisterAccount creates a new RegisterAccount usecase.
func NewRegisterAccount(a domain.AccountStore, r domain.OutcomeRecorder, l *slog.Logger) *RegisterAccount {
	return &RegisterAccount{accounts: a, recorder: recorderOrNoop(r), logger: l}
}

// Execute creates the account unless it already exists.
func (uc *RegisterAccount) Execute(ctx context.Context, in RegisterInput) domain.ActionResult {
	result := uc.register(ctx, in)
	uc.recorder.RecordAction("register", result.Code)
	return result
}

func (uc *RegisterAccount) register(ctx context.Context, in RegisterInput) domain.ActionResult {
	if in.UID == "" || in.Email == "" {
		return domain.Failed(domain.CodeInvalidInput, msgInvalidUserData)
	}

	_, err := uc.accounts.GetAccount(ctx, in.UID)
	switch {
	case err == nil:
		return domain.Failed(domain.CodeAlreadyExists, msgAccountExists)
	case !errors.Is(err, domain.ErrAccountNotFound):
		uc.logger.ErrorContext(ctx, "failed to look up account", "user_id", in.UID, "error", err)
		return domain.Failed(domain.CodePersistenceFailure, msgCreateAccountFail)
	}

	name := in.Name
	if name == "" {
		name = domain.DefaultAccountName
	}

	err = uc.accounts.CreateAccount(ctx, domain.Account{ID: in.UID, Name: name, Email: in.Email})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountExists):
		// Lost a race with a concurrent sign-up for the same identity.
		return domain.Failed(domain.CodeAlreadyExists, msgAccountExists)
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.Failed(domain.CodeDuplicateEmail, msgEmailInUse)
	default:
		uc.logger.ErrorContext(ctx, "failed to create account", "user_id", in.UID, "error", err)
		return domain.Failed(domain.CodePersistenceFailure, msgCreateAccountFail)
	}

	uc.logger.InfoContext(ctx, "account created", "user_id", in.UID, "email", maskEmail(in.Email))
	return domain.Succeeded(msgAccountCreated)
}
