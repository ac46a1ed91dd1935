package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/observability"
	"github.com/spec-kit/jobboard-service/internal/repository/memstore"
	"github.com/spec-kit/jobboard-service/internal/service"
)

func newTestApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	store := memstore.New()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	logger := zap.NewNop()

	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "test-access",
		RefreshSecret: "test-refresh",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	sessions := auth.NewSessionManager(tokens, store.Users())

	authService := service.NewAuthService(config.AuthConfig{BcryptCost: 4}, service.AuthDependencies{
		UserRepo:    store.Users(),
		ProfileRepo: store.Profiles(),
		Sessions:    sessions,
	})
	jobService := service.NewJobService(service.JobDependencies{JobRepo: store.Jobs(), Dispatcher: dispatcher})
	applicationService := service.NewApplicationService(config.LifecycleConfig{}, service.ApplicationDependencies{
		ApplicationRepo: store.Applications(),
		JobRepo:         store.Jobs(),
		ProfileRepo:     store.Profiles(),
		Dispatcher:      dispatcher,
	})
	service.NewActivityService(dispatcher, logger).RegisterHandlers()

	app := NewApp(AppOptions{
		Name:           "test",
		RequestTimeout: 5 * time.Second,
		Errors:         ErrorOptions{Logger: logger, Metrics: metrics},
	})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil, metrics),
		Auth:           handlers.NewAuthHandler(authService, auth.CookieOptions{}),
		Profiles:       handlers.NewProfileHandler(service.NewProfileService(store.Users(), store.Profiles())),
		Jobs:           handlers.NewJobsHandler(jobService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, store.Users()),
		RateLimit:      RateLimit{Max: rateLimit, Window: time.Minute},
	})
	return app
}

type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app, cookies: map[string]string{}}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie.Value
	}

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type idOnly struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func register(t *testing.T, c *client, email string, role domain.Role) string {
	t.Helper()
	status, env := c.do(http.MethodPost, "/auth/register", fiber.Map{
		"name": "User", "email": email, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, status)
	out := decode[struct {
		User idOnly `json:"user"`
	}](t, env)
	require.NotEmpty(t, c.cookies[auth.AccessCookie])
	require.NotEmpty(t, c.cookies[auth.RefreshCookie])
	return out.User.ID
}

func TestJobBoardScenario(t *testing.T) {
	app := newTestApp(t, 0)
	employer := newClient(t, app)
	seeker := newClient(t, app)
	stranger := newClient(t, app)

	register(t, employer, "boss@example.com", domain.RoleEmployer)
	register(t, seeker, "cand@example.com", domain.RoleJobSeeker)
	register(t, stranger, "other@example.com", domain.RoleEmployer)

	status, env := employer.do(http.MethodPost, "/jobs", fiber.Map{
		"title": "Go Engineer", "description": "APIs", "location": "Remote", "job_type": "Full-time",
	})
	require.Equal(t, http.StatusCreated, status)
	job := decode[idOnly](t, env)
	assert.Equal(t, "OPEN", job.Status)

	status, _ = seeker.do(http.MethodPost, "/jobs", fiber.Map{"title": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = seeker.do(http.MethodPost, "/jobs/"+job.ID+"/apply", fiber.Map{"cover_letter": "hi"})
	require.Equal(t, http.StatusCreated, status)
	app1 := decode[idOnly](t, env)
	assert.Equal(t, "APPLIED", app1.Status)

	status, env = seeker.do(http.MethodPost, "/jobs/"+job.ID+"/apply", nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, _ = stranger.do(http.MethodGet, "/employer/jobs/"+job.ID+"/applications", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = stranger.do(http.MethodPatch, "/applications/"+app1.ID+"/status", fiber.Map{"status": "SELECTED"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = employer.do(http.MethodGet, "/employer/jobs/"+job.ID+"/applications", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]idOnly](t, env), 1)

	status, env = employer.do(http.MethodPatch, "/applications/"+app1.ID+"/status", fiber.Map{"status": "UNDER_REVIEW"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "UNDER_REVIEW", decode[idOnly](t, env).Status)

	status, env = employer.do(http.MethodPatch, "/applications/"+app1.ID+"/status", fiber.Map{"status": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	status, _ = employer.do(http.MethodPatch, "/jobs/"+job.ID+"/status", fiber.Map{"status": "CLOSED"})
	require.Equal(t, http.StatusOK, status)

	late := newClient(t, app)
	register(t, late, "late@example.com", domain.RoleJobSeeker)
	status, env = late.do(http.MethodPost, "/jobs/"+job.ID+"/apply", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)

	status, env = seeker.do(http.MethodGet, "/jobseeker/applications", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]idOnly](t, env), 1)

	status, _ = employer.do(http.MethodDelete, "/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = seeker.do(http.MethodGet, "/jobseeker/applications", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]idOnly](t, env))

	status, _ = seeker.do(http.MethodGet, "/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = seeker.do(http.MethodGet, "/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSessionScenario(t *testing.T) {
	app := newTestApp(t, 0)
	c := newClient(t, app)
	register(t, c, "s@example.com", domain.RoleJobSeeker)

	status, _ := c.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)

	oldRefresh := c.cookies[auth.RefreshCookie]
	status, _ = c.do(http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, oldRefresh, c.cookies[auth.RefreshCookie])

	replay := newClient(t, app)
	replay.cookies[auth.RefreshCookie] = oldRefresh
	status, env := replay.do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, _ = newClient(t, app).do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	currentRefresh := c.cookies[auth.RefreshCookie]
	status, _ = c.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, c.cookies[auth.AccessCookie])

	after := newClient(t, app)
	after.cookies[auth.RefreshCookie] = currentRefresh
	status, _ = after.do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodPost, "/auth/login", fiber.Map{"email": "s@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodPost, "/auth/login", fiber.Map{"email": "s@example.com", "password": "nope123"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestForeignTokenIsRejected(t *testing.T) {
	app := newTestApp(t, 0)
	c := newClient(t, app)
	id := register(t, c, "s@example.com", domain.RoleJobSeeker)

	foreign := auth.NewTokenManager(auth.TokenConfig{AccessSecret: "other", RefreshSecret: "other-r"})
	token, _, err := foreign.IssueAccess(id, domain.RoleJobSeeker)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterConflictAndValidation(t *testing.T) {
	app := newTestApp(t, 0)
	c := newClient(t, app)
	register(t, c, "dup@example.com", domain.RoleEmployer)

	status, env := newClient(t, app).do(http.MethodPost, "/auth/register", fiber.Map{
		"name": "B", "email": "dup@example.com", "password": "secret1", "role": "JOBSEEKER",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, env = newClient(t, app).do(http.MethodPost, "/auth/register", fiber.Map{
		"name": "B", "email": "b@example.com", "password": "1", "role": "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error.Details, "password")
	assert.Contains(t, env.Error.Details, "role")
}

func TestAuthRateLimit(t *testing.T) {
	app := newTestApp(t, 2)
	c := newClient(t, app)

	for i := 0; i < 2; i++ {
		status, _ := c.do(http.MethodPost, "/auth/login", fiber.Map{"email": "x@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, env := c.do(http.MethodPost, "/auth/login", fiber.Map{"email": "x@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := newTestApp(t, 0)
	c := newClient(t, app)

	status, env := c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "route not found", env.Error.Message)

	status, env = c.do(http.MethodDelete, "/profile/me", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "route not found", env.Error.Message)
}

func TestProfileMe(t *testing.T) {
	app := newTestApp(t, 0)
	seeker := newClient(t, app)
	id := register(t, seeker, "me@example.com", domain.RoleJobSeeker)

	status, env := seeker.do(http.MethodPut, "/profile/me", fiber.Map{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, status)

	status, env = seeker.do(http.MethodGet, "/profile/me", nil)
	require.Equal(t, http.StatusOK, status)
	account := decode[struct {
		User             idOnly `json:"user"`
		JobSeekerProfile *struct {
			Phone string `json:"phone"`
		} `json:"jobseeker_profile"`
	}](t, env)
	assert.Equal(t, id, account.User.ID)
	require.NotNil(t, account.JobSeekerProfile)
	assert.Equal(t, "555-0100", account.JobSeekerProfile.Phone)

	status, _ = newClient(t, app).do(http.MethodGet, "/profile/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdateJobClearsDeadline(t *testing.T) {
	app := newTestApp(t, 0)
	employer := newClient(t, app)
	register(t, employer, "deadline@example.com", domain.RoleEmployer)

	type jobDeadline struct {
		ID       string     `json:"id"`
		Title    string     `json:"title"`
		Deadline *time.Time `json:"deadline"`
	}

	status, env := employer.do(http.MethodPost, "/jobs", fiber.Map{
		"title": "SRE", "description": "Ops", "location": "Remote", "job_type": "Remote",
		"deadline": "2030-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	job := decode[jobDeadline](t, env)
	require.NotNil(t, job.Deadline)

	status, env = employer.do(http.MethodPut, "/jobs/"+job.ID, fiber.Map{"title": "Senior SRE"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[jobDeadline](t, env)
	assert.Equal(t, "Senior SRE", updated.Title)
	require.NotNil(t, updated.Deadline)

	status, env = employer.do(http.MethodPut, "/jobs/"+job.ID, fiber.Map{"deadline": nil})
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode[jobDeadline](t, env).Deadline)

	status, env = employer.do(http.MethodGet, "/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode[jobDeadline](t, env).Deadline)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t, 0)
	c := newClient(t, app)

	status, _ := c.do(http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
}
