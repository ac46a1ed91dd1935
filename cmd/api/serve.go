package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/jobboard-service/internal/api/http"
	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/observability"
	"github.com/spec-kit/jobboard-service/internal/persistence"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/repository/memstore"
	"github.com/spec-kit/jobboard-service/internal/service"
	"github.com/spec-kit/jobboard-service/internal/worker"
)

const shutdownGrace = 10 * time.Second

type repositories struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
}

func buildRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		store := memstore.New()
		return repositories{
			users:        store.Users(),
			profiles:     store.Profiles(),
			jobs:         store.Jobs(),
			applications: store.Applications(),
		}
	}
	pool := pg.Pool
	return repositories{
		users:        repository.NewUserRepository(pool),
		profiles:     repository.NewProfileRepository(pool),
		jobs:         repository.NewJobRepository(pool),
		applications: repository.NewApplicationRepository(pool),
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func runServe(parent context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return err
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
			return err
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL(),
		RefreshTTL:    cfg.Auth.RefreshTTL(),
	})
	sessions := auth.NewSessionManager(tokens, repos.users)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    repos.users,
		ProfileRepo: repos.profiles,
		Sessions:    sessions,
	})
	profileService := service.NewProfileService(repos.users, repos.profiles)
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    repos.jobs,
		Dispatcher: dispatcher,
	})
	applicationService := service.NewApplicationService(cfg.Lifecycle, service.ApplicationDependencies{
		ApplicationRepo: repos.applications,
		JobRepo:         repos.jobs,
		ProfileRepo:     repos.profiles,
		Dispatcher:      dispatcher,
	})
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))

	app := httptransport.NewApp(httptransport.AppOptions{
		Name:             cfg.App.Name,
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
		RequestTimeout:   cfg.App.RequestTimeout(),
		Errors: httptransport.ErrorOptions{
			Logger:     logger,
			Metrics:    metrics,
			Production: cfg.App.IsProduction(),
		},
	})

	rateLimit := httptransport.RateLimit{
		Max:    cfg.Auth.RateLimitMax,
		Window: cfg.Auth.RateLimitWindow(),
	}
	if redis.Reachable() {
		rateLimit.Storage = persistence.NewRedisStorage(redis.Client, cfg.App.Name+":ratelimit:")
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService, auth.CookieOptions{Secure: cfg.App.IsProduction()}),
		Profiles:       handlers.NewProfileHandler(profileService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, repos.users),
		RateLimit:      rateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("fiber listen", zap.Error(err))
			return err
		}
		return nil
	case sig := <-shutdownSignal():
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}

	if err := app.ShutdownWithTimeout(shutdownGrace); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("graceful shutdown incomplete", zap.Error(err))
	}
	return nil
}

func runMigrate(parent context.Context, dir string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_DSN is required to run migrations")
	}
	if dir == "" {
		dir = cfg.Postgres.MigrationsDir
	}
	if parent == nil {
		parent = context.Background()
	}

	pg, err := persistence.NewPostgres(parent, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	return persistence.RunMigrations(parent, pg.Pool, dir, logger)
}

func shutdownSignal() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}
