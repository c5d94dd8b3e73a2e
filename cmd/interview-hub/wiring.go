package main

import (
	"context"
	"fmt"
	"log/slog"

	"interview-hub/config"
	"interview-hub/internal/adapter/gateway"
	"interview-hub/internal/adapter/handler"
	"interview-hub/internal/domain"
	firestorestore "interview-hub/internal/infrastructure/store/firestore"
	mongostore "interview-hub/internal/infrastructure/store/mongo"
	pgstore "interview-hub/internal/infrastructure/store/postgres"
	infratoken "interview-hub/internal/infrastructure/token"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// backend bundles the identity provider and document store selected by configuration.
type backend struct {
	identity   domain.IdentityProvider
	accounts   domain.AccountStore
	interviews domain.InterviewStore
	checks     map[string]handler.HealthCheck
	closers    []func(context.Context) error
}

func (b *backend) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			slog.WarnContext(ctx, "failed to close backend resource", "error", err)
		}
	}
}

func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{checks: map[string]handler.HealthCheck{}}

	var app *firebase.App
	if cfg.IdentityProvider == config.ProviderFirebase || cfg.DocumentStore == config.StoreFirestore {
		var opts []option.ClientOption
		if cfg.FirebaseCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		}
		var err error
		app, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
		}
	}

	if err := b.initIdentity(ctx, cfg, app); err != nil {
		b.close(ctx)
		return nil, err
	}
	if err := b.initStore(ctx, cfg, app, logger); err != nil {
		b.close(ctx)
		return nil, err
	}
	return b, nil
}

func (b *backend) initIdentity(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.IdentityProvider {
	case config.ProviderFirebase:
		authClient, err := app.Auth(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize firebase auth: %w", err)
		}
		b.identity = gateway.NewFirebaseGateway(authClient, cfg.ProviderTimeout)
		slog.InfoContext(ctx, "identity provider initialized", "provider", cfg.IdentityProvider, "project_id", cfg.FirebaseProjectID)

	case config.ProviderKratos:
		signer, err := infratoken.NewSessionSigner(infratoken.SessionConfig{
			Secret: cfg.SessionSigningSecret,
			Issuer: cfg.SessionIssuer,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize session signer: %w", err)
		}
		b.identity = gateway.NewKratosGateway(cfg.KratosURL, cfg.KratosAdminURL, signer, cfg.ProviderTimeout)
		slog.InfoContext(ctx, "identity provider initialized",
			"provider", cfg.IdentityProvider,
			"base_url", cfg.KratosURL,
			"admin_url", cfg.KratosAdminURL)

	default:
		return fmt.Errorf("unknown identity provider %q", cfg.IdentityProvider)
	}
	return nil
}

func (b *backend) initStore(ctx context.Context, cfg *config.Config, app *firebase.App, logger *slog.Logger) error {
	switch cfg.DocumentStore {
	case config.StoreFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize firestore: %w", err)
		}
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		b.accounts = firestorestore.NewAccountStore(client, logger)
		b.interviews = firestorestore.NewInterviewStore(client, logger)
		b.checks["firestore"] = func(ctx context.Context) error {
			return firestoreReachable(ctx, client)
		}

	case config.StorePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func(context.Context) error { pool.Close(); return nil })
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		b.accounts = pgstore.NewAccountStore(pool, logger)
		b.interviews = pgstore.NewInterviewStore(pool, logger)
		b.checks["postgres"] = pool.Ping

	case config.StoreMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoDBURL, logger)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, client.Disconnect)
		db := client.Database(cfg.MongoDBDatabase)
		accounts := mongostore.NewAccountStore(db, logger)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			return err
		}
		b.accounts = accounts
		b.interviews = mongostore.NewInterviewStore(db, logger)
		b.checks["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}

	default:
		return fmt.Errorf("unknown document store %q", cfg.DocumentStore)
	}

	slog.InfoContext(ctx, "document store initialized", "store", cfg.DocumentStore)
	return nil
}

// firestoreReachable reads a sentinel document; NotFound still proves the backend answered.
func firestoreReachable(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collection("users").Doc("_health").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}
