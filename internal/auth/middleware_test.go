package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func testApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JWTMiddleware(cfg), func(c *fiber.Ctx) error {
		id, name := Actor(c)
		return c.JSON(fiber.Map{"uid": id, "username": name})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: strings.Repeat("a", 32)}
	app := testApp(cfg)
	user := &models.User{ID: 7, Username: "bar7"}

	valid, err := GenerateToken(cfg.JWTSecret, time.Hour, user)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTCustomClaims{
		UserID:   7,
		Username: "bar7",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatal(err)
	}
	otherKey, err := GenerateToken(strings.Repeat("b", 32), time.Hour, user)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"other key", "Bearer " + otherKey, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestGenerateTokenDefaultsTTL(t *testing.T) {
	secret := strings.Repeat("a", 32)
	signed, err := GenerateToken(secret, 0, &models.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatal(err)
	}

	claims := &JWTCustomClaims{}
	if _, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		t.Fatal(err)
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", ttl)
	}
	if claims.UserID != 1 || claims.Username != "u" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pourme123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "pourme123" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q", hash)
	}
}
