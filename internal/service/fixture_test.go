package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository/memstore"
)

type fixture struct {
	store        *memstore.Store
	dispatcher   events.Dispatcher
	auth         *AuthService
	jobs         *JobService
	applications *ApplicationService
	profiles     *ProfileService
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	store := memstore.New()
	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})

	return &fixture{
		store:      store,
		dispatcher: dispatcher,
		auth: NewAuthService(config.AuthConfig{BcryptCost: 4}, AuthDependencies{
			UserRepo:    store.Users(),
			ProfileRepo: store.Profiles(),
			Sessions:    auth.NewSessionManager(tokens, store.Users()),
		}),
		jobs: NewJobService(JobDependencies{JobRepo: store.Jobs(), Dispatcher: dispatcher}),
		applications: NewApplicationService(config.LifecycleConfig{StrictTransitions: strict}, ApplicationDependencies{
			ApplicationRepo: store.Applications(),
			JobRepo:         store.Jobs(),
			ProfileRepo:     store.Profiles(),
			Dispatcher:      dispatcher,
		}),
		profiles: NewProfileService(store.Users(), store.Profiles()),
	}
}

func (f *fixture) register(t *testing.T, email string, role domain.Role) domain.Actor {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Name:     "User " + email,
		Email:    email,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return domain.Actor{ID: res.User.ID, Role: res.User.Role}
}

func (f *fixture) postJob(t *testing.T, employer domain.Actor) *domain.Job {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), employer, JobInput{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Location:    "Remote",
		JobType:     domain.JobTypeFullTime,
	})
	require.NoError(t, err)
	return job
}
