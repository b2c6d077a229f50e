package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func placedEvent(t *testing.T) *ordering.OrderPlacedEvent {
	t.Helper()
	order, err := ordering.NewOrder(
		uuid.New(), uuid.New(), "ORD-004521", "USD",
		uuid.New(), "Wax Print Dress", 3, decimal.RequireFromString("15.00"))
	require.NoError(t, err)
	return ordering.NewOrderPlacedEvent(order)
}

func TestLedgerNotifier_Publish(t *testing.T) {
	t.Run("posts the event envelope", func(t *testing.T) {
		received := make(chan []byte, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			received <- body
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		notifier := NewLedgerNotifier(&config.LedgerConfig{WebhookURL: server.URL, Timeout: 2 * time.Second}, zap.NewNop())
		require.NotNil(t, notifier)

		notifier.Publish(context.Background(), placedEvent(t))

		select {
		case body := <-received:
			var env map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &env))
			assert.Equal(t, ordering.EventTypeOrderPlaced, env["event_type"])
			assert.Equal(t, "Order", env["aggregate_type"])
			data := env["data"].(map[string]interface{})
			assert.Equal(t, "ORD-004521", data["order_number"])
		case <-time.After(3 * time.Second):
			t.Fatal("notification never arrived")
		}
	})

	t.Run("delivery failure does not panic or block", func(t *testing.T) {
		notifier := NewLedgerNotifier(&config.LedgerConfig{WebhookURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, zap.NewNop())
		require.NotNil(t, notifier)

		event := placedEvent(t)
		done := make(chan struct{})
		go func() {
			notifier.Publish(context.Background(), event)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked")
		}
	})

	t.Run("no webhook url disables the notifier", func(t *testing.T) {
		assert.Nil(t, NewLedgerNotifier(&config.LedgerConfig{}, zap.NewNop()))
	})
}
