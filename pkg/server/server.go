// Package server assembles the Fiber application: middleware, error
// rendering, health endpoints and the domain routes.
package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/traveldocs/pkg/config"
	"github.com/Abraxas-365/traveldocs/pkg/errx"
	"github.com/Abraxas-365/traveldocs/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const serviceName = "traveldocs-api"

// RouteRegistrar mounts a group of handlers on a router
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// StatusFunc reports live figures for the health endpoint
type StatusFunc func() fiber.Map

// New builds the application with every route mounted
func New(cfg *config.Config, status StatusFunc, routes ...RouteRegistrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Travel Docs API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler(cfg),
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           120 * time.Second,
	})

	setupMiddleware(app, cfg)

	app.Get("/health", healthCheckHandler(cfg, status))
	app.Get("/", infoHandler(cfg))

	for _, r := range routes {
		r.RegisterRoutes(app)
	}

	app.Use(notFoundHandler)

	return app
}

// ============================================================================
// Middleware
// ============================================================================

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(corsConfig(cfg.Server)))

	logFormat := "${time} | ${status} | ${latency} | ${method} ${path}"
	if cfg.IsDevelopment() {
		logFormat += " | ${ip} | ${respHeader:X-Request-ID}\n"
	} else {
		logFormat += "\n"
	}

	app.Use(logger.New(logger.Config{
		Format:     logFormat,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

// corsConfig allows any method and echoes requested headers. With a wildcard
// origin and credentials enabled every origin is reflected back, since
// browsers reject "*" alongside credentials.
func corsConfig(s config.ServerConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS",
		AllowHeaders:     "",
		AllowCredentials: s.CORSAllowCredentials,
		ExposeHeaders:    fiber.HeaderXRequestID,
	}

	switch {
	case !s.AllowsAnyOrigin():
		c.AllowOrigins = strings.Join(s.CORSOrigins, ",")
	case s.CORSAllowCredentials:
		c.AllowOrigins = "http://localhost:3000"
		c.AllowOriginsFunc = func(string) bool { return true }
	default:
		c.AllowOrigins = "*"
	}
	return c
}

// ============================================================================
// Handlers
// ============================================================================

func healthCheckHandler(cfg *config.Config, status StatusFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":      "healthy",
			"service":     serviceName,
			"environment": cfg.Environment,
			"timestamp":   fmt.Sprintf("%d", time.Now().Unix()),
		}
		if status != nil {
			for k, v := range status() {
				health[k] = v
			}
		}
		return c.JSON(health)
	}
}

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     "Travel Docs API",
			"description": "Travel documentation assistant backed by an LLM",
			"environment": cfg.Environment,
			"model":       cfg.LLM.Model,
			"endpoints": fiber.Map{
				"travel_info": "POST /travel-info/",
				"health":      "GET /health",
			},
		})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

// ============================================================================
// Error Handler
// ============================================================================

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":      fe.Message,
				"detail":     fe.Message,
				"code":       "FIBER_ERROR",
				"status":     fe.Code,
				"request_id": requestID,
			})
		}

		if e, ok := errx.As(err); ok {
			entry := logx.WithFields(logx.Fields{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
				"code":       e.Code,
			})
			if e.HTTPStatus >= fiber.StatusInternalServerError {
				entry.Errorf("Request error: %v", err)
			} else {
				entry.Infof("Request rejected: %s", e.Message)
			}

			response := fiber.Map{
				"error":      e.Message,
				"detail":     e.Message,
				"code":       e.Code,
				"type":       string(e.Type),
				"status":     e.HTTPStatus,
				"request_id": requestID,
			}
			if len(e.Details) > 0 {
				response["details"] = e.Details
			}
			if cfg.IsDevelopment() && e.Err != nil {
				response["underlying_error"] = e.Err.Error()
			}
			return c.Status(e.HTTPStatus).JSON(response)
		}

		logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"request_id": requestID,
		}).Errorf("Unhandled request error: %v", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Internal Server Error",
			"detail":     "An unexpected error occurred.",
			"type":       "INTERNAL",
			"code":       "INTERNAL_ERROR",
			"request_id": requestID,
		})
	}
}
