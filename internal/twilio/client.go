package twilio

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the part of the Twilio REST API the sink uses.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Client delivers reminder notifications to one WhatsApp recipient.
type Client struct {
	api          MessageCreator
	fromWhatsApp string
	toWhatsApp   string
	logger       *log.Logger
}

// New creates a Twilio client sending from fromWhatsApp to toWhatsApp.
func New(accountSID, authToken, fromWhatsApp, toWhatsApp string, logger *log.Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken})
	return NewWithAPI(rest.Api, fromWhatsApp, toWhatsApp, logger)
}

// NewWithAPI builds a client over an existing message API.
func NewWithAPI(api MessageCreator, fromWhatsApp, toWhatsApp string, logger *log.Logger) *Client {
	return &Client{
		api:          api,
		fromWhatsApp: fromWhatsApp,
		toWhatsApp:   toWhatsApp,
		logger:       logger,
	}
}

// Notify sends the notification title and body as one WhatsApp message.
func (c *Client) Notify(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.SendWhatsAppMessage(c.toWhatsApp, fmt.Sprintf("*%s*\n%s", title, body))
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio's API.
func (c *Client) SendWhatsAppMessage(to, body string) error {
	if c.api == nil {
		return fmt.Errorf("twilio client not initialised")
	}

	sender := normalizeWhatsAppAddress(c.fromWhatsApp)
	if sender == "" {
		return fmt.Errorf("twilio sender WhatsApp number is not configured")
	}

	recipient := normalizeWhatsAppAddress(to)
	if recipient == "" {
		return fmt.Errorf("recipient number missing or invalid")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(sender)
	params.SetBody(body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send message error: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		c.logger.Debug("twilio: message sent", "sid", *resp.Sid, "to", recipient)
	}
	return nil
}

func normalizeWhatsAppAddress(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "whatsapp:") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "+") {
		return "whatsapp:" + trimmed
	}
	return "whatsapp:+" + trimmed
}
