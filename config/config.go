package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderFirebase = "firebase"
	ProviderKratos   = "kratos"

	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
)

// Config holds the application configuration
type Config struct {
	Port          string
	DeploymentEnv string

	IdentityProvider string // firebase or kratos
	DocumentStore    string // firestore, postgres or mongo

	FirebaseProjectID       string
	FirebaseCredentialsFile string // empty means application default credentials

	KratosURL            string // Frontend API (port 4433)
	KratosAdminURL       string // Admin API (port 4434)
	SessionSigningSecret string
	SessionIssuer        string

	DatabaseURL     string
	MongoDBURL      string
	MongoDBDatabase string

	ProviderTimeout       time.Duration
	LatestInterviewsLimit int
	AuthRateLimit         float64 // requests per second per IP on /api/auth
	AuthRateBurst         int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		Port:                    getEnv("PORT", "8080"),
		DeploymentEnv:           getEnv("DEPLOYMENT_ENV", "development"),
		IdentityProvider:        strings.ToLower(getEnv("IDENTITY_PROVIDER", ProviderFirebase)),
		DocumentStore:           strings.ToLower(getEnv("DOCUMENT_STORE", StoreFirestore)),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		KratosURL:               getEnv("KRATOS_URL", "http://kratos:4433"),
		KratosAdminURL:          getEnv("KRATOS_ADMIN_URL", "http://kratos:4434"),
		SessionSigningSecret:    getEnv("SESSION_SIGNING_SECRET", ""),
		SessionIssuer:           getEnv("SESSION_ISSUER", "interview-hub"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		MongoDBURL:              getEnv("MONGODB_URL", ""),
		MongoDBDatabase:         getEnv("MONGODB_DATABASE", "interview_hub"),
		ProviderTimeout:         5 * time.Second,
		LatestInterviewsLimit:   20,
		AuthRateLimit:           5,
		AuthRateBurst:           10,
	}

	if v := os.Getenv("PROVIDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT format: %w", err)
		}
		config.ProviderTimeout = d
	}

	if v := os.Getenv("LATEST_INTERVIEWS_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LATEST_INTERVIEWS_LIMIT: %w", err)
		}
		config.LatestInterviewsLimit = n
	}

	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
		}
		config.AuthRateLimit = f
	}

	if v := os.Getenv("AUTH_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
		}
		config.AuthRateBurst = n
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT cannot be empty"))
	}

	switch c.IdentityProvider {
	case ProviderFirebase:
		if c.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firebase identity provider"))
		}
	case ProviderKratos:
		if c.KratosURL == "" || c.KratosAdminURL == "" {
			errs = append(errs, errors.New("KRATOS_URL and KRATOS_ADMIN_URL are required for the kratos identity provider"))
		}
		if len(c.SessionSigningSecret) < 32 {
			errs = append(errs, errors.New("SESSION_SIGNING_SECRET must be at least 32 bytes"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider))
	}

	switch c.DocumentStore {
	case StoreFirestore:
		if c.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firestore document store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres document store"))
		}
	case StoreMongo:
		if c.MongoDBURL == "" {
			errs = append(errs, errors.New("MONGODB_URL is required for the mongo document store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCUMENT_STORE %q", c.DocumentStore))
	}

	if c.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}
	if c.LatestInterviewsLimit <= 0 {
		errs = append(errs, errors.New("LATEST_INTERVIEWS_LIMIT must be positive"))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether cookies must carry the Secure attribute.
func (c *Config) IsProduction() bool {
	return c.DeploymentEnv == "production"
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
