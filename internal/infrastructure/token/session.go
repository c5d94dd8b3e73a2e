package token

import (
	"errors"
	"fmt"
	"time"

	"interview-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

// SessionConfig holds session token signing configuration.
type SessionConfig struct {
	Secret string
	Issuer string
}

// sessionClaims represents the JWT claims stored in the session cookie.
type sessionClaims struct {
	Sid string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionSigner issues and verifies session cookies as HS256 JWTs.
// It backs identity providers that do not mint session cookies themselves.
type SessionSigner struct {
	cfg SessionConfig
	now func() time.Time
}

// NewSessionSigner creates a signer. The secret must be at least 32 bytes.
func NewSessionSigner(cfg SessionConfig) (*SessionSigner, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, domain.ErrSessionSecretWeak
	}
	return &SessionSigner{cfg: cfg, now: time.Now}, nil
}

// Issue signs a session token for the account and upstream session.
func (s *SessionSigner) Issue(uid, sessionID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Sid: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry and returns the claims.
func (s *SessionSigner) Parse(raw string) (*domain.SessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", domain.ErrSessionInvalid)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionInvalid, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrSessionInvalid)
	}

	return &domain.SessionClaims{
		UID:       claims.Subject,
		SessionID: claims.Sid,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
