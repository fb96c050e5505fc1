package webui

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/mudler/xlog"
)

// RunReminderSweep is the external trigger for the reminder sweep, guarded by
// a shared secret in a header or query parameter. An empty configured secret
// leaves the endpoint open (local development).
func (a *App) RunReminderSweep() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !a.authorizeCron(c) {
			return errorJSONMessage(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		processed, err := a.config.Sweeper.Run(c.UserContext())
		if err != nil {
			xlog.Error("Reminder sweep failed", "error", err)
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"processed": processed})
	}
}

func (a *App) authorizeCron(c *fiber.Ctx) bool {
	expected := a.config.CronSecret
	if expected == "" {
		return true
	}
	header := c.Get("X-Cron-Secret")
	query := c.Query("secret")
	return subtle.ConstantTimeCompare([]byte(header), []byte(expected)) == 1 ||
		subtle.ConstantTimeCompare([]byte(query), []byte(expected)) == 1
}
