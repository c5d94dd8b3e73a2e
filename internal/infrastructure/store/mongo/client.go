package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	connectTimeout  = 10 * time.Second
	maxPoolSize     = 100
	minPoolSize     = 1
	maxConnIdleTime = 300 * time.Second
	retryAttempts   = 3
	retryInterval   = 5 * time.Second
)

var ErrFailedToConnect = errors.New("failed to connect to mongodb")

// Connect opens a client and pings the primary, retrying to ride out cold starts.
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true)

	var lastErr error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		client, err := mongo.Connect(opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
			err = client.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				logger.Info("mongodb connection established", "attempt", attempt)
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		lastErr = err
		logger.Warn("mongodb connection attempt failed", "attempt", attempt, "error", err)

		if attempt == retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrFailedToConnect, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrFailedToConnect, lastErr)
}
