package firestore

import (
	"context"
	"fmt"
	"log/slog"

	"interview-hub/internal/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const accountsCollection = "users"

type accountDocument struct {
	Name  string `firestore:"name,omitempty"`
	Email string `firestore:"email,omitempty"`
}

// AccountStore implements domain.AccountStore on Cloud Firestore.
type AccountStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewAccountStore creates a new Firestore account store.
func NewAccountStore(client *firestore.Client, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		client: client,
		logger: logger.With("component", "account_store"),
	}
}

// GetAccount loads users/{id}.
func (s *AccountStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	snap, err := s.client.Collection(accountsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var doc accountDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode account: %w", domain.ErrStoreUnavailable, err)
	}
	return &domain.Account{ID: snap.Ref.ID, Name: doc.Name, Email: doc.Email}, nil
}

// CreateAccount writes users/{id} with Create, which fails if the document already exists.
func (s *AccountStore) CreateAccount(ctx context.Context, account domain.Account) error {
	_, err := s.client.Collection(accountsCollection).Doc(account.ID).Create(ctx, account.Attributes())
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	s.logger.DebugContext(ctx, "account document created", "user_id", account.ID)
	return nil
}
