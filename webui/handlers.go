package webui

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mudler/xlog"
	"gorm.io/datatypes"

	"github.com/actually-app/actually/core/agent"
	"github.com/actually-app/actually/core/trust"
	"github.com/actually-app/actually/core/types"
	models "github.com/actually-app/actually/dbmodels"
)

func (a *App) currentUser(c *fiber.Ctx) (*models.User, error) {
	externalID, _ := c.Locals("externalID").(string)
	return a.config.Users.ByExternalID(c.UserContext(), externalID)
}

func (a *App) Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID, _ := c.Locals("externalID").(string)

		payload := struct {
			Message string `json:"message"`
		}{}
		if err := c.BodyParser(&payload); err != nil || payload.Message == "" {
			return errorJSONMessage(c, fiber.StatusBadRequest, "Message required")
		}

		reply, err := a.config.Agent.HandleMessage(c.UserContext(), externalID, payload.Message, types.ChannelWeb)
		if errors.Is(err, agent.ErrUserNotFound) {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}
		if err != nil {
			xlog.Error("Agent message failed", "user", externalID, "error", err)
			return errorJSONMessage(c, fiber.StatusBadGateway, "Agent unavailable")
		}

		return c.JSON(fiber.Map{"response": reply})
	}
}

func (a *App) Conversation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		messages, err := a.config.Conversations.History(c.UserContext(), user.ID, types.ChannelWeb)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"messages": messages})
	}
}

func (a *App) ResetConversation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		if err := a.config.Conversations.Clear(c.UserContext(), user.ID, types.ChannelWeb); err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func (a *App) ActionHistory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		actions, err := a.config.Actions.Recent(c.UserContext(), user.ID, types.ActionFilter{
			Type:  c.Query("type"),
			Query: c.Query("q"),
			Limit: 200,
		})
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"actions": actions})
	}
}

func (a *App) SavedItems() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		items, err := a.config.SavedItems.Recent(c.UserContext(), user.ID, 50)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"items": items})
	}
}

func (a *App) GetSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		settings := types.AgentSettings{}
		if len(user.AgentSettings) > 0 {
			if err := json.Unmarshal(user.AgentSettings, &settings); err != nil {
				return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(fiber.Map{"settings": settings})
	}
}

var (
	validTones         = map[string]bool{"casual": true, "professional": true, "minimal": true}
	validProactivities = map[string]bool{"high": true, "medium": true, "low": true}
	validVerbosities   = map[string]bool{"detailed": true, "concise": true, "tldr": true}
)

func validSettings(s types.AgentSettings) bool {
	if s.Tone != "" && !validTones[s.Tone] {
		return false
	}
	if s.Proactivity != "" && !validProactivities[s.Proactivity] {
		return false
	}
	if s.Verbosity != "" && !validVerbosities[s.Verbosity] {
		return false
	}
	return true
}

func (a *App) UpdateSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		var settings types.AgentSettings
		if err := c.BodyParser(&settings); err != nil {
			return errorJSONMessage(c, fiber.StatusBadRequest, "Invalid settings")
		}
		if !validSettings(settings) {
			return errorJSONMessage(c, fiber.StatusBadRequest, "Invalid settings")
		}

		encoded, err := json.Marshal(settings)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if err := a.config.Users.UpdateAgentSettings(c.UserContext(), user.ID, datatypes.JSON(encoded)); err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func (a *App) TrustScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		verified, err := a.config.Connections.CountVerified(c.UserContext(), user.ID)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}

		breakdown := trust.Score(trust.Inputs{
			PhoneVerified:       user.PhoneVerified,
			EmailVerified:       user.EmailVerified,
			VerifiedConnections: verified,
			CreatedAt:           user.CreatedAt,
			EngagementPoints:    user.EngagementPoints,
		})
		return c.JSON(fiber.Map{"trust": breakdown})
	}
}

func (a *App) ConnectGoogle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.config.GoogleOAuth == nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, "Google OAuth not configured")
		}

		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		payload := struct {
			Code string `json:"code"`
		}{}
		if err := c.BodyParser(&payload); err != nil || payload.Code == "" {
			return errorJSONMessage(c, fiber.StatusBadRequest, "Code required")
		}

		token, err := a.config.GoogleOAuth.Exchange(c.UserContext(), payload.Code)
		if err != nil {
			xlog.Error("Google code exchange failed", "user", user.ID, "error", err)
			return errorJSONMessage(c, fiber.StatusBadGateway, "Google exchange failed")
		}

		if err := a.config.GoogleTokens.Save(c.UserContext(), user.ID, token); err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"connected": true})
	}
}

func (a *App) GoogleStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.currentUser(c)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		if user == nil {
			return errorJSONMessage(c, fiber.StatusNotFound, "User not found")
		}

		connected, err := a.config.GoogleTokens.Connected(c.UserContext(), user.ID)
		if err != nil {
			return errorJSONMessage(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"connected": connected})
	}
}
