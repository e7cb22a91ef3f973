package reporting

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// ErrInvalidWebhookURL is returned for URLs that do not point at a Discord
// webhook.
var ErrInvalidWebhookURL = errors.New("invalid webhook URL")

// Webhook is a Sink that executes a Discord webhook.
type Webhook struct {
	session *discordgo.Session
	id      string
	token   string
}

// NewWebhook creates a Webhook for rawURL, which has the form
// https://discord.com/api/webhooks/{id}/{token}.
func NewWebhook(s *discordgo.Session, rawURL string) (*Webhook, error) {
	id, token, err := ParseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Webhook{session: s, id: id, token: token}, nil
}

// ParseWebhookURL extracts the webhook ID and token from rawURL.
func ParseWebhookURL(rawURL string) (id, token string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidWebhookURL, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return "", "", fmt.Errorf("%w: expected an absolute http(s) URL", ErrInvalidWebhookURL)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(segments); i++ {
		if segments[i] != "webhooks" {
			continue
		}
		id, token = segments[i+1], segments[i+2]
		if _, err := snowflake.Parse(id); err != nil {
			return "", "", fmt.Errorf("%w: webhook ID %q is not a snowflake", ErrInvalidWebhookURL, id)
		}
		if token == "" {
			break
		}
		return id, token, nil
	}

	return "", "", fmt.Errorf("%w: missing /webhooks/{id}/{token} path", ErrInvalidWebhookURL)
}

// Send executes the webhook with blocks as embeds. Report contents never
// mention anyone.
func (w *Webhook) Send(blocks []*discordgo.MessageEmbed) error {
	_, err := w.session.WebhookExecute(w.id, w.token, false, &discordgo.WebhookParams{
		Embeds: blocks,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to execute log webhook: %w", err)
	}
	return nil
}
