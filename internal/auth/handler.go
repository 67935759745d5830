package auth

import (
	"strings"

	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
		}

		user, err := st.UserByUsername(c.UserContext(), body.Username)
		if err != nil {
			if ledger.KindOf(err) == ledger.KindNotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.TokenTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"uid":      user.ID,
				"username": user.Username,
				"uname":    user.Name,
				"pos":      user.Position,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, username := Actor(c)

		user, err := st.GetUser(c.UserContext(), userID)
		if err != nil {
			if ledger.KindOf(err) == ledger.KindNotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
			}
			return err
		}
		if user.Username != username {
			return fiber.NewError(fiber.StatusUnauthorized, "Token does not match user")
		}

		return c.JSON(fiber.Map{
			"uid":      user.ID,
			"username": user.Username,
			"uname":    user.Name,
			"pos":      user.Position,
			"desc":     user.Description,
		})
	}
}

// HashPassword is the bcrypt hash stored for a user password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
