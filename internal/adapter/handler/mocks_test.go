package handler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"interview-hub/internal/domain"
	"interview-hub/internal/usecase"
	"interview-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// mockProvider implements domain.IdentityProvider. Cookies are "cookie:<uid>".
type mockProvider struct {
	emails  map[string]string // email -> uid
	tokens  map[string]string // bearer token -> uid
	mintErr error
}

func (m *mockProvider) VerifyToken(_ context.Context, token string) (string, error) {
	uid, ok := m.tokens[token]
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return uid, nil
}

func (m *mockProvider) CreateSessionCookie(_ context.Context, token string, _ time.Duration) (string, error) {
	if m.mintErr != nil {
		return "", m.mintErr
	}
	return "cookie:" + m.tokens[token], nil
}

func (m *mockProvider) VerifySessionCookie(_ context.Context, cookie string, _ bool) (*domain.SessionClaims, error) {
	uid, ok := strings.CutPrefix(cookie, "cookie:")
	if !ok || uid == "" {
		return nil, domain.ErrSessionInvalid
	}
	return &domain.SessionClaims{UID: uid}, nil
}

func (m *mockProvider) GetAccountByEmail(_ context.Context, email string) (*domain.IdentityRecord, error) {
	uid, ok := m.emails[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.IdentityRecord{UID: uid, Email: email}, nil
}

// mockStore implements domain.AccountStore and domain.InterviewStore in memory.
type mockStore struct {
	accounts   map[string]domain.Account
	interviews []domain.Interview
	listErr    error
}

func (m *mockStore) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (m *mockStore) CreateAccount(_ context.Context, a domain.Account) error {
	if _, ok := m.accounts[a.ID]; ok {
		return domain.ErrAccountExists
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *mockStore) ListInterviewsByUser(_ context.Context, userID string) ([]domain.Interview, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Interview
	for _, iv := range m.interviews {
		if iv.UserID == userID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockStore) ListLatestInterviews(_ context.Context, excludeUserID string, _ int) ([]domain.Interview, error) {
	var out []domain.Interview
	for _, iv := range m.interviews {
		if iv.UserID != excludeUserID && iv.Finalized {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockStore) GetFeedback(context.Context, string, string) (*domain.Feedback, error) {
	return nil, domain.ErrFeedbackNotFound
}

type testApp struct {
	echo     *echo.Echo
	provider *mockProvider
	store    *mockStore
}

// newTestApp wires the handlers the same way main does, on top of in-memory fakes.
func newTestApp(secureCookie bool) *testApp {
	logger := slog.Default()
	provider := &mockProvider{
		emails: map[string]string{"a@x.com": "u1"},
		tokens: map[string]string{"tok-u1": "u1"},
	}
	store := &mockStore{accounts: map[string]domain.Account{}}

	resolve := usecase.NewResolvePrincipal(provider, store, nil, logger)
	auth := NewAuthHandler(
		usecase.NewRegisterAccount(store, nil, logger),
		usecase.NewAuthenticate(provider, usecase.NewEstablishSession(provider, secureCookie, logger), nil, logger),
		usecase.NewTerminateSession(secureCookie, logger),
		resolve,
		logger,
	)
	dashboard := NewDashboardHandler(usecase.NewListDashboard(store, 20, logger))

	e := echo.New()
	e.Validator = validator.New()
	e.POST("/api/auth/sign-up", auth.SignUp)
	e.POST("/api/auth/sign-in", auth.SignIn)
	e.POST("/api/auth/sign-out", auth.SignOut)
	e.GET("/api/auth/me", auth.Me)
	e.GET("/api/auth/status", auth.Status)
	e.GET("/api/interviews", dashboard.Handle, RequirePrincipal(resolve))

	return &testApp{echo: e, provider: provider, store: store}
}
