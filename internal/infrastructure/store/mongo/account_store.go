package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"interview-hub/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	accountsCollection = "users"
	emailIndexName     = "email_1"
)

type accountDocument struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name,omitempty"`
	Email string `bson:"email,omitempty"`
}

// AccountStore implements domain.AccountStore for MongoDB. Documents are keyed by account id in _id.
type AccountStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewAccountStore creates a new MongoDB account store.
func NewAccountStore(db *mongo.Database, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		coll:   db.Collection(accountsCollection),
		logger: logger.With("component", "account_store"),
	}
}

// EnsureIndexes creates the unique email index.
func (s *AccountStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// GetAccount loads the account document by id.
func (s *AccountStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var doc accountDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &domain.Account{ID: doc.ID, Name: doc.Name, Email: doc.Email}, nil
}

// CreateAccount inserts the account. A duplicate _id fails the insert.
func (s *AccountStore) CreateAccount(ctx context.Context, account domain.Account) error {
	_, err := s.coll.InsertOne(ctx, accountDocument{ID: account.ID, Name: account.Name, Email: account.Email})
	if err != nil {
		return classifyInsertError(err)
	}
	s.logger.DebugContext(ctx, "account inserted", "user_id", account.ID)
	return nil
}

func classifyInsertError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, emailIndexName) {
				return domain.ErrDuplicateEmail
			}
		}
	}
	return domain.ErrAccountExists
}
