package webui

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mudler/xlog"

	"github.com/actually-app/actually/core/types"
	"github.com/actually-app/actually/integrations/twilio"
)

const twimlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Message>%s</Message>
</Response>`

// SMSWebhook handles inbound Twilio messages: validate the request
// signature, resolve the sender to a user, run the agent pipeline and answer
// with a TwiML envelope.
func (a *App) SMSWebhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.config.TwilioAuthToken == "" {
			return c.Status(fiber.StatusInternalServerError).SendString("Twilio auth token missing")
		}

		params := map[string]string{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params[string(key)] = string(value)
		})

		signature := c.Get("X-Twilio-Signature")
		if !twilio.ValidateSignature(a.config.TwilioAuthToken, signature, a.candidateURLs(c), params) {
			return c.Status(fiber.StatusForbidden).SendString("Invalid signature")
		}

		from := params["From"]
		body := params["Body"]
		if from == "" || body == "" {
			return c.Status(fiber.StatusBadRequest).SendString("Bad request")
		}

		user, err := a.config.Users.ByPhone(c.UserContext(), from)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		if user == nil {
			return c.Status(fiber.StatusNotFound).SendString("User not found")
		}

		reply, err := a.config.Agent.HandleMessage(c.UserContext(), user.ExternalID, body, types.ChannelSMS)
		if err != nil {
			xlog.Error("SMS agent message failed", "user", user.ID, "error", err)
			return c.Status(fiber.StatusBadGateway).SendString("Agent unavailable")
		}

		c.Set("Content-Type", "text/xml")
		return c.SendString(fmt.Sprintf(twimlTemplate, escapeXML(reply)))
	}
}

// candidateURLs lists the callback URLs the signature may have been computed
// against. Reverse proxies can rewrite host or protocol, so we try the
// request as seen, the flipped scheme, and the configured public base.
func (a *App) candidateURLs(c *fiber.Ctx) []string {
	requestURI := string(c.Request().URI().RequestURI())
	host := c.Hostname()
	scheme := c.Protocol()

	urls := []string{scheme + "://" + host + requestURI}
	if scheme == "http" {
		urls = append(urls, "https://"+host+requestURI)
	} else {
		urls = append(urls, "http://"+host+requestURI)
	}
	if base := strings.TrimRight(a.config.PublicBaseURL, "/"); base != "" {
		urls = append(urls, base+requestURI)
	}
	return urls
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
