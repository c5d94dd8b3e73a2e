package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-hub/config"
	adapterhandler "interview-hub/internal/adapter/handler"
	"interview-hub/internal/infrastructure/metrics"
	"interview-hub/internal/usecase"
	appmiddleware "interview-hub/middleware"
	"interview-hub/utils/logger"
	"interview-hub/utils/otel"
	"interview-hub/utils/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	log := logger.Init(otelCfg.Enabled)

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"deployment_env", cfg.DeploymentEnv,
		"identity_provider", cfg.IdentityProvider,
		"document_store", cfg.DocumentStore)

	// Infrastructure
	be, err := newBackend(ctx, cfg, log)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize backend", "error", err)
		os.Exit(1)
	}
	recorder := metrics.NewRecorder()

	// Usecases
	establishUC := usecase.NewEstablishSession(be.identity, cfg.IsProduction(), log)
	registerUC := usecase.NewRegisterAccount(be.accounts, recorder, log)
	authenticateUC := usecase.NewAuthenticate(be.identity, establishUC, recorder, log)
	terminateUC := usecase.NewTerminateSession(cfg.IsProduction(), log)
	resolveUC := usecase.NewResolvePrincipal(be.identity, be.accounts, recorder, log)
	dashboardUC := usecase.NewListDashboard(be.interviews, cfg.LatestInterviewsLimit, log)

	// Handlers
	authHandler := adapterhandler.NewAuthHandler(registerUC, authenticateUC, terminateUC, resolveUC, log)
	dashboardHandler := adapterhandler.NewDashboardHandler(dashboardUC)
	healthHandler := adapterhandler.NewHealthHandler(be.checks)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(appmiddleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.RequestContext())

	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(appmiddleware.RequestLogger(log, "/health", "/ready", "/metrics"))
	e.Use(middleware.Recover())

	authRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)
	readRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.AuthRateLimit*10), cfg.AuthRateBurst*5)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/sign-up", authHandler.SignUp, authRL.Middleware())
	authGroup.POST("/sign-in", authHandler.SignIn, authRL.Middleware())
	authGroup.POST("/sign-out", authHandler.SignOut)
	authGroup.GET("/me", authHandler.Me, readRL.Middleware())
	authGroup.GET("/status", authHandler.Status, readRL.Middleware())

	e.GET("/api/interviews", dashboardHandler.Handle,
		readRL.Middleware(),
		adapterhandler.RequirePrincipal(resolveUC))

	e.GET("/health", healthHandler.Handle)
	e.GET("/ready", healthHandler.Ready)
	e.GET("/metrics", echo.WrapHandler(recorder.Handler()))

	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting interview-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		be.close(shutdownCtx)
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
