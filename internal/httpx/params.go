// Package httpx holds request parsing shared by the HTTP handlers. Failures
// are ledger InvalidInput errors so the error handler answers 400.
package httpx

import (
	"strconv"
	"strings"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// ID parses a positive integer route parameter.
func ID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, ledger.InvalidInput("%s must be a positive integer, got %q", name, raw)
	}
	return uint(n), nil
}

// Code parses a non-empty string route parameter such as a bar code.
func Code(c *fiber.Ctx, name string) (string, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" {
		return "", ledger.InvalidInput("%s is required", name)
	}
	return v, nil
}

// Date parses a YYYY-MM-DD route parameter.
func Date(c *fiber.Ctx, name string) (time.Time, error) {
	return ledger.ParseDate(c.Params(name))
}

// OptionalDate parses a date query parameter; an absent value yields nil.
func OptionalDate(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := ledger.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
