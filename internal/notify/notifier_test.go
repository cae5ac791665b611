package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGatewayNotifier_Send tests that the notification payload reaches the gateway
func TestGatewayNotifier_Send(t *testing.T) {
	var got Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewGatewayNotifier(server.URL, 2*time.Second, zerolog.Nop())
	err := n.Send(context.Background(), Notification{
		UserID: "user-1",
		Title:  "Bet settled",
		Body:   "You won 190.91 BR",
		Data:   map[string]string{"betId": "bet-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Bet settled", got.Title)
	assert.Equal(t, "bet-1", got.Data["betId"])
}

// TestGatewayNotifier_Send_GatewayError tests that non-2xx responses error
func TestGatewayNotifier_Send_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n := NewGatewayNotifier(server.URL, 2*time.Second, zerolog.Nop())
	err := n.Send(context.Background(), Notification{UserID: "user-1", Title: "t", Body: "b"})
	assert.Error(t, err)
}

// TestNopNotifier tests the no-op notifier never errors
func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.Send(context.Background(), Notification{UserID: "u"}))
}
