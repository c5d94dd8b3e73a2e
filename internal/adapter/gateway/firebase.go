package gateway

import (
	"context"
	"fmt"
	"time"

	"interview-hub/internal/domain"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is the subset of *auth.Client used by the gateway.
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*auth.Token, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
}

// FirebaseGateway implements domain.IdentityProvider with Firebase Authentication.
type FirebaseGateway struct {
	client  FirebaseAuthClient
	timeout time.Duration
}

// NewFirebaseGateway wraps a Firebase auth client.
func NewFirebaseGateway(client FirebaseAuthClient, timeout time.Duration) *FirebaseGateway {
	return &FirebaseGateway{client: client, timeout: timeout}
}

// VerifyToken checks a Firebase ID token.
func (g *FirebaseGateway) VerifyToken(ctx context.Context, bearerToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tok, err := g.client.VerifyIDToken(ctx, bearerToken)
	if err != nil {
		if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) || auth.IsIDTokenRevoked(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	return tok.UID, nil
}

// CreateSessionCookie exchanges an ID token for a Firebase session cookie.
func (g *FirebaseGateway) CreateSessionCookie(ctx context.Context, bearerToken string, expiresIn time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cookie, err := g.client.SessionCookie(ctx, bearerToken, expiresIn)
	if err != nil {
		if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	return cookie, nil
}

// VerifySessionCookie validates a session cookie, optionally checking revocation.
func (g *FirebaseGateway) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*domain.SessionClaims, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var (
		tok *auth.Token
		err error
	)
	if checkRevoked {
		tok, err = g.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	} else {
		tok, err = g.client.VerifySessionCookie(ctx, cookie)
	}
	if err != nil {
		switch {
		case auth.IsSessionCookieRevoked(err), auth.IsUserDisabled(err):
			return nil, fmt.Errorf("%w: %w", domain.ErrSessionRevoked, err)
		case auth.IsSessionCookieInvalid(err):
			return nil, fmt.Errorf("%w: %w", domain.ErrSessionInvalid, err)
		default:
			return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
		}
	}

	return &domain.SessionClaims{
		UID:       tok.UID,
		ExpiresAt: time.Unix(tok.Expires, 0),
	}, nil
}

// GetAccountByEmail looks up the Firebase user record for an email.
func (g *FirebaseGateway) GetAccountByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	user, err := g.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	if user.UserInfo == nil {
		return nil, fmt.Errorf("%w: user record without info", domain.ErrProviderUnavailable)
	}

	return &domain.IdentityRecord{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}
