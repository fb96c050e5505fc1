package webui

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type App struct {
	*fiber.App
	config *Config
}

func NewApp(opts ...Option) *App {
	config := NewConfig(opts...)
	webapp := fiber.New(fiber.Config{
		AppName: "actually",
	})

	a := &App{
		App:    webapp,
		config: config,
	}
	a.registerRoutes(webapp)

	return a
}

func errorJSONMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// requireUser resolves the caller's stable external identity from a bearer
// token and stores it in locals. With DEV_BYPASS_AUTH the X-Debug-User header
// substitutes for a token.
func (a *App) requireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.config.DevBypassAuth {
			if id := c.Get("X-Debug-User"); id != "" {
				c.Locals("externalID", id)
				return c.Next()
			}
		}

		raw := strings.TrimSpace(c.Get("Authorization"))
		if !strings.HasPrefix(raw, "Bearer ") {
			return errorJSONMessage(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		token := strings.TrimPrefix(raw, "Bearer ")
		if token == "" {
			return errorJSONMessage(c, fiber.StatusUnauthorized, "Not authenticated")
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.config.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			return errorJSONMessage(c, fiber.StatusUnauthorized, "Not authenticated")
		}

		sub, err := parsed.Claims.GetSubject()
		if err != nil || sub == "" {
			return errorJSONMessage(c, fiber.StatusUnauthorized, "Not authenticated")
		}

		c.Locals("externalID", sub)
		return c.Next()
	}
}
