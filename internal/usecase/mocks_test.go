package usecase

import (
	"context"
	"sync"
	"time"

	"interview-hub/internal/domain"
)

// mockProvider implements domain.IdentityProvider for testing.
// Cookies it mints are "cookie:<uid>" and verify back to that uid unless revoked.
type mockProvider struct {
	accounts  map[string]*domain.IdentityRecord // keyed by email
	tokens    map[string]string                 // bearer token -> uid
	revoked   map[string]bool
	lookupErr error
	mintErr   error
	verifyErr error

	mintedTTL time.Duration
	calls     int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		accounts: map[string]*domain.IdentityRecord{},
		tokens:   map[string]string{},
		revoked:  map[string]bool{},
	}
}

func (m *mockProvider) VerifyToken(_ context.Context, token string) (string, error) {
	m.calls++
	if m.verifyErr != nil {
		return "", m.verifyErr
	}
	uid, ok := m.tokens[token]
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return uid, nil
}

func (m *mockProvider) CreateSessionCookie(_ context.Context, token string, expiresIn time.Duration) (string, error) {
	m.calls++
	m.mintedTTL = expiresIn
	if m.mintErr != nil {
		return "", m.mintErr
	}
	uid, ok := m.tokens[token]
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return "cookie:" + uid, nil
}

func (m *mockProvider) VerifySessionCookie(_ context.Context, cookie string, checkRevoked bool) (*domain.SessionClaims, error) {
	m.calls++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	const prefix = "cookie:"
	if len(cookie) <= len(prefix) || cookie[:len(prefix)] != prefix {
		return nil, domain.ErrSessionInvalid
	}
	uid := cookie[len(prefix):]
	if checkRevoked && m.revoked[uid] {
		return nil, domain.ErrSessionRevoked
	}
	return &domain.SessionClaims{UID: uid, ExpiresAt: time.Now().Add(domain.SessionDuration)}, nil
}

func (m *mockProvider) GetAccountByEmail(_ context.Context, email string) (*domain.IdentityRecord, error) {
	m.calls++
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	rec, ok := m.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return rec, nil
}

// mockAccounts implements domain.AccountStore in memory.
type mockAccounts struct {
	mu        sync.Mutex
	docs      map[string]map[string]any
	getErr    error
	createErr error
	calls     int
}

func newMockAccounts() *mockAccounts {
	return &mockAccounts{docs: map[string]map[string]any{}}
}

func (m *mockAccounts) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	name, _ := doc["name"].(string)
	email, _ := doc["email"].(string)
	return &domain.Account{ID: id, Name: name, Email: email}, nil
}

func (m *mockAccounts) CreateAccount(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.docs[a.ID]; ok {
		return domain.ErrAccountExists
	}
	m.docs[a.ID] = a.Attributes()
	return nil
}

// mockJar implements domain.CookieJar and remembers what was written.
type mockJar struct {
	values  map[string]string
	set     []domain.Cookie
	deleted []domain.Cookie
}

func newMockJar() *mockJar {
	return &mockJar{values: map[string]string{}}
}

func (j *mockJar) Get(name string) (string, bool) {
	v, ok := j.values[name]
	return v, ok
}

func (j *mockJar) Set(c domain.Cookie) {
	j.values[c.Name] = c.Value
	j.set = append(j.set, c)
}

func (j *mockJar) Delete(c domain.Cookie) {
	delete(j.values, c.Name)
	j.deleted = append(j.deleted, c)
}

// mockRecorder implements domain.OutcomeRecorder.
type mockRecorder struct {
	actions     []domain.ResultCode
	resolutions []bool
}

func (r *mockRecorder) RecordAction(_ string, code domain.ResultCode) {
	r.actions = append(r.actions, code)
}

func (r *mockRecorder) RecordResolution(resolved bool) {
	r.resolutions = append(r.resolutions, resolved)
}
