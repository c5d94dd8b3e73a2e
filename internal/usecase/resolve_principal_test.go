package usecase

import (
	"context"
	"log/slog"
	"testing"

	"interview-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrincipal(t *testing.T) {
	tests := []struct {
		name    string
		cookie  string
		setup   func(p *mockProvider, a *mockAccounts)
		want    *domain.Principal
	}{
		{
			name:   "valid session",
			cookie: "cookie:u1",
			want:   &domain.Principal{ID: "u1", Name: "Ann", Email: "a@x.com"},
		},
		{
			name: "no cookie",
		},
		{
			name:   "tampered cookie",
			cookie: "garbage",
		},
		{
			name:   "revoked session",
			cookie: "cookie:u1",
			setup: func(p *mockProvider, _ *mockAccounts) {
				p.revoked["u1"] = true
			},
		},
		{
			name:   "provider unavailable",
			cookie: "cookie:u1",
			setup: func(p *mockProvider, _ *mockAccounts) {
				p.verifyErr = domain.ErrProviderUnavailable
			},
		},
		{
			name:   "account deleted",
			cookie: "cookie:u1",
			setup: func(_ *mockProvider, a *mockAccounts) {
				delete(a.docs, "u1")
			},
		},
		{
			name:   "store unavailable",
			cookie: "cookie:u1",
			setup: func(_ *mockProvider, a *mockAccounts) {
				a.getErr = domain.ErrStoreUnavailable
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newMockProvider()
			accounts := newMockAccounts()
			accounts.docs["u1"] = map[string]any{"name": "Ann", "email": "a@x.com"}
			if tt.setup != nil {
				tt.setup(provider, accounts)
			}
			jar := newMockJar()
			if tt.cookie != "" {
				jar.values["session"] = tt.cookie
			}
			recorder := &mockRecorder{}
			uc := NewResolvePrincipal(provider, accounts, recorder, slog.Default())

			got := uc.Execute(context.Background(), jar)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, []bool{tt.want != nil}, recorder.resolutions)
		})
	}
}

func TestResolvePrincipal_IsAuthenticated(t *testing.T) {
	provider := newMockProvider()
	accounts := newMockAccounts()
	accounts.docs["u1"] = map[string]any{"email": "a@x.com"}
	uc := NewResolvePrincipal(provider, accounts, nil, slog.Default())

	jar := newMockJar()
	assert.False(t, uc.IsAuthenticated(context.Background(), jar))

	jar.values["session"] = "cookie:u1"
	assert.True(t, uc.IsAuthenticated(context.Background(), jar))
}

func TestResolvePrincipal_ReadsAccountEveryTime(t *testing.T) {
	provider := newMockProvider()
	accounts := newMockAccounts()
	accounts.docs["u1"] = map[string]any{"name": "Ann", "email": "a@x.com"}
	uc := NewResolvePrincipal(provider, accounts, nil, slog.Default())
	jar := newMockJar()
	jar.values["session"] = "cookie:u1"

	require.NotNil(t, uc.Execute(context.Background(), jar))
	accounts.docs["u1"]["name"] = "Annie"
	got := uc.Execute(context.Background(), jar)

	require.NotNil(t, got)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, 2, accounts.calls)
}

func TestTerminateSession_Idempotent(t *testing.T) {
	uc := NewTerminateSession(false, slog.Default())
	jar := newMockJar()
	jar.values["session"] = "cookie:u1"

	uc.Execute(context.Background(), jar)
	uc.Execute(context.Background(), jar)

	_, ok := jar.Get("session")
	assert.False(t, ok)
	require.Len(t, jar.deleted, 2)
	assert.Equal(t, "session", jar.deleted[0].Name)
	assert.Equal(t, jar.deleted[0], jar.deleted[1])
}

func TestTerminateSession_MatchesEstablishedAttributes(t *testing.T) {
	for _, secure := range []bool{false, true} {
		provider := newMockProvider()
		provider.tokens["tok-u1"] = "u1"
		jar := newMockJar()

		require.NoError(t, NewEstablishSession(provider, secure, slog.Default()).Execute(context.Background(), jar, "tok-u1"))
		NewTerminateSession(secure, slog.Default()).Execute(context.Background(), jar)

		require.Len(t, jar.set, 1)
		require.Len(t, jar.deleted, 1)
		set, deleted := jar.set[0], jar.deleted[0]
		assert.Empty(t, deleted.Value)
		set.Value = ""
		assert.Equal(t, set, deleted, "secure=%v", secure)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	provider := newMockProvider()
	accounts := newMockAccounts()
	provider.accounts["a@x.com"] = &domain.IdentityRecord{UID: "u1", Email: "a@x.com"}
	provider.tokens["tok-u1"] = "u1"

	register := NewRegisterAccount(accounts, nil, logger)
	authenticate := NewAuthenticate(provider, NewEstablishSession(provider, false, logger), nil, logger)
	resolve := NewResolvePrincipal(provider, accounts, nil, logger)
	terminate := NewTerminateSession(false, logger)
	jar := newMockJar()

	first := register.Execute(ctx, RegisterInput{UID: "u1", Name: "Ann", Email: "a@x.com"})
	require.True(t, first.Success)

	second := register.Execute(ctx, RegisterInput{UID: "u1", Name: "Ann", Email: "a@x.com"})
	assert.Equal(t, domain.CodeAlreadyExists, second.Code)

	signIn := authenticate.Execute(ctx, jar, AuthenticateInput{Email: "a@x.com", BearerToken: "tok-u1"})
	require.True(t, signIn.Success)
	assert.Equal(t, domain.SessionEstablished, signIn.Session)

	assert.Equal(t, &domain.Principal{ID: "u1", Name: "Ann", Email: "a@x.com"}, resolve.Execute(ctx, jar))

	terminate.Execute(ctx, jar)
	assert.Nil(t, resolve.Execute(ctx, jar))
	assert.False(t, resolve.IsAuthenticated(ctx, jar))
}
