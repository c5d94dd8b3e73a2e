package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"interview-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// SessionTokenSigner issues and verifies the session cookies handed to browsers in Kratos mode.
type SessionTokenSigner interface {
	Issue(uid, sessionID string, ttl time.Duration) (string, error)
	Parse(raw string) (*domain.SessionClaims, error)
}

// KratosGateway implements domain.IdentityProvider on top of Ory Kratos.
// Bearer tokens are Kratos session tokens; the browser cookie is a signed JWT
// that points back at the Kratos session so revocation can be checked.
type KratosGateway struct {
	client       *kratos.APIClient
	adminBaseURL string
	httpClient   *http.Client
	signer       SessionTokenSigner
	timeout      time.Duration
}

// NewKratosGateway creates a new Kratos gateway with tuned HTTP transport.
func NewKratosGateway(baseURL, adminBaseURL string, signer SessionTokenSigner, timeout time.Duration) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	configuration.HTTPClient = httpClient

	return &KratosGateway{
		client:       kratos.NewAPIClient(configuration),
		adminBaseURL: adminBaseURL,
		httpClient:   httpClient,
		signer:       signer,
		timeout:      timeout,
	}
}

// VerifyToken resolves a Kratos session token to its identity ID.
func (g *KratosGateway) VerifyToken(ctx context.Context, bearerToken string) (string, error) {
	session, err := g.whoami(ctx, bearerToken)
	if err != nil {
		return "", err
	}
	return session.Identity.Id, nil
}

// CreateSessionCookie verifies the token and signs a cookie bound to its Kratos session.
func (g *KratosGateway) CreateSessionCookie(ctx context.Context, bearerToken string, expiresIn time.Duration) (string, error) {
	session, err := g.whoami(ctx, bearerToken)
	if err != nil {
		return "", err
	}
	return g.signer.Issue(session.Identity.Id, session.Id, expiresIn)
}

// VerifySessionCookie checks the cookie signature and, when asked, that the Kratos session is still active.
func (g *KratosGateway) VerifySessionCookie(ctx context.Context, cookie string, checkRevoked bool) (*domain.SessionClaims, error) {
	claims, err := g.signer.Parse(cookie)
	if err != nil {
		return nil, err
	}
	if !checkRevoked {
		return claims, nil
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: no upstream session", domain.ErrSessionInvalid)
	}

	var session adminSession
	// The admin API omits the identity unless it is expanded explicitly.
	status, err := g.adminGet(ctx, "/admin/sessions/"+url.PathEscape(claims.SessionID)+"?expand=identity", &session)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, domain.ErrSessionRevoked
		}
		return nil, err
	}
	if !session.Active || session.Identity.ID != claims.UID {
		return nil, domain.ErrSessionRevoked
	}
	return claims, nil
}

// GetAccountByEmail finds the identity whose credentials identifier is the email.
func (g *KratosGateway) GetAccountByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error) {
	query := url.Values{"credentials_identifier": {email}}
	var identities []adminIdentity
	if _, err := g.adminGet(ctx, "/admin/identities?"+query.Encode(), &identities); err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return nil, domain.ErrAccountNotFound
	}

	id := identities[0]
	return &domain.IdentityRecord{
		UID:         id.ID,
		Email:       id.Traits.Email,
		DisplayName: id.Traits.Name,
	}, nil
}

func (g *KratosGateway) whoami(ctx context.Context, bearerToken string) (*kratos.Session, error) {
	if bearerToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).XSessionToken(bearerToken).Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, domain.ErrTokenInvalid
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrTokenInvalid
	}
	if session.Identity == nil || session.Identity.Id == "" {
		return nil, fmt.Errorf("%w: session has no identity", domain.ErrTokenInvalid)
	}
	return session, nil
}

// adminIdentity represents a Kratos identity from Admin API.
type adminIdentity struct {
	ID     string `json:"id"`
	Traits struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"traits"`
}

// adminSession represents a Kratos session from Admin API.
type adminSession struct {
	ID       string        `json:"id"`
	Active   bool          `json:"active"`
	Identity adminIdentity `json:"identity"`
}

var errAdminStatus = errors.New("unexpected admin API status")

// adminGet decodes a JSON response from the Admin API. The status code is returned even on error.
func (g *KratosGateway) adminGet(ctx context.Context, path string, out any) (int, error) {
	if g.adminBaseURL == "" {
		return 0, fmt.Errorf("%w: admin API not configured", domain.ErrProviderUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.adminBaseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%w: %w %d", domain.ErrProviderUnavailable, errAdminStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	return resp.StatusCode, nil
}
