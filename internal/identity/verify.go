// Package identity handles user-lifecycle events delivered by the external
// identity provider's webhook. The provider is the sole source of truth for
// user identity; this package verifies deliveries and applies them
// idempotently to the local user store.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook header names, per the svix delivery convention the provider uses.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// timestampTolerance bounds how stale or future-dated a delivery may be.
const timestampTolerance = 5 * time.Minute

// Verifier checks webhook delivery signatures.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier from the provider's signing secret.
// Secrets are distributed as "whsec_<base64>".
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	if raw == "" {
		return nil, fmt.Errorf("webhook secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("webhook secret is not valid base64: %w", err)
	}
	return &Verifier{secret: key}, nil
}

// Verify checks the signature of one delivery. The signed content is
// "{id}.{timestamp}.{payload}"; the signature header carries a
// space-separated list of versioned signatures ("v1,<base64>").
func (v *Verifier) Verify(id, timestamp, signatureHeader string, payload []byte) error {
	if id == "" || timestamp == "" || signatureHeader == "" {
		return fmt.Errorf("missing webhook headers")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}
	age := time.Since(time.Unix(ts, 0))
	if age > timestampTolerance || age < -timestampTolerance {
		return fmt.Errorf("webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, versioned := range strings.Fields(signatureHeader) {
		version, sig, found := strings.Cut(versioned, ",")
		if !found || version != "v1" {
			continue
		}
		got, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}

	return fmt.Errorf("no matching webhook signature")
}
