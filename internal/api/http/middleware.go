package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/observability"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ErrorOptions controls how failures are rendered.
type ErrorOptions struct {
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Production bool
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, opts ErrorOptions, timeout time.Duration) {
	app.Use(observability.RequestLogger(opts.Logger, opts.Metrics))
	app.Use(errorHandlingMiddleware(opts))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

// ErrorHandler renders errors that escape the middleware chain, such as unmatched routes.
func ErrorHandler(opts ErrorOptions) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, err, opts)
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(opts ErrorOptions) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				opts.Logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = writeError(c, err, opts)
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, err error, opts ErrorOptions) error {
	domainErr := toDomainError(err)

	opts.Metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code())

	details := map[string]any{}
	for k, v := range domainErr.Details {
		details[k] = v
	}

	switch domainErr.Kind {
	case apperrors.KindStoreUnavailable:
		opts.Metrics.RecordStoreUnavailable()
		opts.Logger.Error("data store unavailable", zap.String("path", c.Path()), zap.Error(domainErr))
	case apperrors.KindInternal:
		opts.Logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
	}
	if !opts.Production && domainErr.Err != nil && domainErr.Kind.HTTPStatus() >= http.StatusInternalServerError {
		details["debug"] = domainErr.Err.Error()
	}

	body := fiber.Map{
		"code":    domainErr.Code(),
		"message": domainErr.Message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	return c.Status(domainErr.Kind.HTTPStatus()).JSON(fiber.Map{"error": body})
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message := fiberErr.Message
		if fiberErr.Code == http.StatusNotFound || fiberErr.Code == http.StatusMethodNotAllowed {
			message = "route not found"
		}
		return apperrors.NewDomainError(kindForStatus(fiberErr.Code), message, nil)
	}
	return apperrors.ToDomainError(err)
}

func kindForStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return apperrors.KindValidation
	case http.StatusUnauthorized:
		return apperrors.KindUnauthenticated
	case http.StatusForbidden:
		return apperrors.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apperrors.KindNotFound
	case http.StatusConflict:
		return apperrors.KindConflict
	case http.StatusServiceUnavailable:
		return apperrors.KindStoreUnavailable
	default:
		return apperrors.KindInternal
	}
}
