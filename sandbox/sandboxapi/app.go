package sandboxapi

import (
	"errors"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// BodyLimit caps request bodies, uploads included
const BodyLimit = 20 * 1024 * 1024

// NewApp builds the fiber app serving every sandbox route. accessLog turns
// on the request logger.
func NewApp(h *Handlers, tokens *sandboxauth.TokenService, accessLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Aikyuu Sandbox",
		DisableStartupMessage: true,
		BodyLimit:             BodyLimit,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	if accessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h.RegisterRoutes(app, tokens)
	return app
}

// ErrorHandler renders errx errors with their status and fiber errors as
// {error, message, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":   fe.Message,
			"message": fe.Message,
			"code":    fe.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		status := e.HTTPStatus
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		if status >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(status).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"message": "Internal Server Error",
	})
}
