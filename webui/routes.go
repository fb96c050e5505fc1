package webui

import (
	fiber "github.com/gofiber/fiber/v2"
)

func (a *App) registerRoutes(webapp *fiber.App) {
	// Unauthenticated surfaces with their own gatekeeping: the Twilio
	// signature check and the cron shared secret.
	webapp.Post("/api/agent/webhook/sms", a.SMSWebhook())
	webapp.Get("/api/cron/reminders", a.RunReminderSweep())
	webapp.Post("/api/cron/reminders", a.RunReminderSweep())

	authed := webapp.Group("/api", a.requireUser())
	authed.Post("/agent/chat", a.Chat())
	authed.Get("/agent/conversation", a.Conversation())
	authed.Delete("/agent/conversation", a.ResetConversation())
	authed.Get("/agent/actions", a.ActionHistory())
	authed.Get("/agent/settings", a.GetSettings())
	authed.Patch("/agent/settings", a.UpdateSettings())
	authed.Get("/saved", a.SavedItems())
	authed.Get("/insights/trust", a.TrustScore())
	authed.Post("/integrations/google/connect", a.ConnectGoogle())
	authed.Get("/integrations/google/status", a.GoogleStatus())
}
