package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
)

// RateLimit configures the limiter on credential endpoints. A nil Storage keeps counters in
// process memory.
type RateLimit struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      RateLimit
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authenticated := cfg.AuthMiddleware.Handle
	employer := auth.RequireRole(domain.RoleEmployer)
	jobSeeker := auth.RequireRole(domain.RoleJobSeeker)

	rateLimited := authRateLimiter(cfg.RateLimit)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", rateLimited, cfg.Auth.Register)
	authGroup.Post("/login", rateLimited, cfg.Auth.Login)
	authGroup.Post("/refresh", rateLimited, cfg.Auth.Refresh)
	authGroup.Post("/logout", authenticated, cfg.Auth.Logout)
	authGroup.Get("/me", authenticated, auth.RequireCapability(auth.CapViewSelf), cfg.Auth.Me)

	app.Get("/profile/me", authenticated, cfg.Profiles.Mine)
	app.Put("/profile/me", authenticated, cfg.Profiles.UpdateMine)
	app.Get("/employers/:id", cfg.Profiles.GetEmployer)
	app.Get("/jobseekers/:id", cfg.Profiles.GetJobSeeker)

	jobs := app.Group("/jobs")
	jobs.Post("/", authenticated, employer, cfg.Jobs.Create)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Put("/:id", authenticated, employer, cfg.Jobs.Update)
	jobs.Delete("/:id", authenticated, employer, cfg.Jobs.Delete)
	jobs.Patch("/:id/status", authenticated, employer, cfg.Jobs.SetStatus)
	jobs.Post("/:id/apply", authenticated, jobSeeker, cfg.Applications.Apply)

	app.Get("/jobseeker/applications", authenticated, jobSeeker, cfg.Applications.ListMine)
	app.Get("/employer/jobs", authenticated, employer, cfg.Jobs.ListMine)
	app.Get("/employer/jobs/:id/applications", authenticated, employer, cfg.Applications.ListForJob)
	app.Patch("/applications/:id/status", authenticated, employer, cfg.Applications.SetStatus)
}

func authRateLimiter(cfg RateLimit) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "RATE_LIMITED",
					"message": "too many requests, please try again later",
				},
			})
		},
	})
}
