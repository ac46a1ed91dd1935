package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AppOptions configures the fiber application.
type AppOptions struct {
	Name             string
	CORSAllowOrigins string
	RequestTimeout   time.Duration
	Errors           ErrorOptions
}

// NewApp builds a fiber app with the global middleware stack installed.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler(opts.Errors),
		BodyLimit:    1 << 20,
	})

	origins := strings.TrimSpace(opts.CORSAllowOrigins)
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "" && origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	RegisterMiddlewares(app, opts.Errors, opts.RequestTimeout)
	return app
}
