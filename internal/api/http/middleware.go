package http

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/config"
	"github.com/nesthome/lead-service/internal/observability"
	apperrors "github.com/nesthome/lead-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: CORS, security headers,
// error handling, and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cors config.CORSConfig) {
	app.Use(corsMiddleware(cors, logger))
	app.Use(securityHeadersMiddleware())
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(requestLoggerMiddleware(logger, metrics))
}

// corsMiddleware echoes the origin with credentials for allowed origins only.
// Method/header/max-age headers are always set so preflights succeed.
func corsMiddleware(cfg config.CORSConfig, logger *zap.Logger) fiber.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		normalized := strings.TrimSuffix(origin, "/")

		if origin != "" {
			_, ok := allowed[normalized]
			if !ok {
				_, ok = allowed[origin]
			}
			if ok {
				c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
				c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
			} else {
				logger.Warn("cors blocked origin", zap.String("origin", origin))
			}
		}

		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, x-session-id, X-Session-Id")
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

func securityHeadersMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				response := fiber.Map{
					"success": false,
					"error":   domainErr.Message,
				}
				if len(domainErr.Details) > 0 {
					response["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

func requestLoggerMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		path := c.Path()
		status := c.Response().StatusCode()
		if metrics != nil {
			metrics.RecordRequest(path, c.Method(), status, duration)
		}
		if strings.HasPrefix(path, "/api") {
			logger.Info("request",
				zap.String("method", c.Method()),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("duration", duration))
		}
		return err
	}
}
