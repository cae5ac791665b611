// Package notify delivers push notifications to users through the
// notification gateway. Delivery is best-effort: settlement never fails
// because a notification could not be sent.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notification is a single push message for one user.
type Notification struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Notifier sends push notifications.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// GatewayNotifier posts notifications to an HTTP push gateway.
type GatewayNotifier struct {
	url    string
	http   *http.Client
	logger zerolog.Logger
}

// NewGatewayNotifier creates a notifier for the given gateway URL.
func NewGatewayNotifier(gatewayURL string, timeout time.Duration, logger zerolog.Logger) *GatewayNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GatewayNotifier{
		url:    gatewayURL,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// Send posts a notification to the gateway.
func (g *GatewayNotifier) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach notification gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway returned status %d", resp.StatusCode)
	}

	g.logger.Debug().Str("user_id", n.UserID).Str("title", n.Title).Msg("Notification sent")
	return nil
}

// NopNotifier discards notifications, used when no gateway is configured.
type NopNotifier struct{}

// Send implements Notifier.
func (NopNotifier) Send(ctx context.Context, n Notification) error { return nil }
