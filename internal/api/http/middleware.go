package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/observability"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RegisterMiddlewares installs the global chain. Order matters: the request
// logger wraps the error renderer so it observes the status the client gets.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(renderErrors(logger, metrics))
	if timeout > 0 {
		app.Use(withDeadline(timeout))
	}
}

// withDeadline bounds the user context handed to services and repositories.
func withDeadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// renderErrors turns handler errors and panics into the JSON error envelope.
func renderErrors(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("path", c.Path()),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			appErr := apperrors.ToDomainError(err)
			metrics.RecordError(observability.RouteKey(c), c.Method(), appErr.Code)
			if appErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(appErr))
			}
			err = writeError(c, appErr)
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, appErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return c.Status(appErr.HTTPStatus).JSON(fiber.Map{"error": body})
}
