package domain

import "errors"

// Input errors.
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Account errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrDuplicateEmail  = errors.New("email already in use")
)

// Authentication errors.
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrTokenInvalid     = errors.New("bearer token invalid")
	ErrSessionInvalid   = errors.New("session cookie invalid")
	ErrSessionRevoked   = errors.New("session revoked")
	ErrIdentityMismatch = errors.New("token does not belong to account")
)

// Token errors.
var (
	ErrTokenGeneration   = errors.New("token generation failed")
	ErrSessionSecretWeak = errors.New("session signing secret too weak")
)

// External service errors.
var (
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	ErrStoreUnavailable    = errors.New("document store unavailable")
	ErrFeedbackNotFound    = errors.New("feedback not found")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
