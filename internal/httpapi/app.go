package httpapi

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/animeku/anistream/internal/apperrors"
	"github.com/animeku/anistream/internal/config"
)

// NewApp creates the fiber app with CORS for the browser front-end, request
// logging, and panic recovery. Unexpected handler errors are reported to
// Sentry when a DSN is configured.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "anistream",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))

	return app
}

// errorHandler maps typed errors to API responses. Not-found and
// unsupported-server errors are expected outcomes; anything else is logged,
// reported, and answered with a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var notFound *apperrors.ErrNotFound
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": notFound.Error(),
		})
	}

	var unsupported *apperrors.ErrUnsupportedServer
	if errors.As(err, &unsupported) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unsupported server type",
		})
	}

	var upstream *apperrors.ErrUpstreamStatus
	if errors.As(err, &upstream) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch " + upstream.Operation,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	log := config.GetLogger()
	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled request error")
	sentry.CaptureException(err)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}
