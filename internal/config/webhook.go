package config

import (
	"fmt"
	"os"
	"strings"
)

// WebhookConfig holds the signing secret for identity provider webhooks.
type WebhookConfig struct {
	Secret string
}

// NewWebhookConfig creates webhook configuration from environment variables.
// It reads WEBHOOK_SECRET (required), the "whsec_"-prefixed signing secret
// shown in the identity provider's webhook dashboard.
func NewWebhookConfig() (*WebhookConfig, error) {
	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required but not set")
	}

	config := &WebhookConfig{Secret: secret}
	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *WebhookConfig) normalize() error {
	if !strings.HasPrefix(c.Secret, "whsec_") {
		return fmt.Errorf("WEBHOOK_SECRET must start with whsec_")
	}
	return nil
}
