// Package server wires the HTTP surface: middleware, error mapping and routes.
package server

import (
	"errors"
	"strings"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// New builds the application with every route registered.
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "faststock",
		ErrorHandler: ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	registerRoutes(app, cfg, db, log)
	return app
}

// ErrorHandler renders every error as {"error": message}. Ledger kinds map
// to client statuses; anything unclassified is a logged 500.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		status := fiber.StatusInternalServerError
		switch ledger.KindOf(err) {
		case ledger.KindNotFound:
			status = fiber.StatusNotFound
		case ledger.KindInvalidInput, ledger.KindReferenceViolation:
			status = fiber.StatusBadRequest
		case ledger.KindConflict:
			status = fiber.StatusConflict
		}
		if status != fiber.StatusInternalServerError {
			var le *ledger.Error
			msg := err.Error()
			if errors.As(err, &le) {
				msg = le.Msg
			}
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}

		log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": requestID(c),
		}).WithError(err).Error("request failed")
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func requestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": requestID(c),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("request")
		} else {
			entry.Info("request")
		}
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

func corsOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
