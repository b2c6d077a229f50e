// Package notify pushes domain events to the external order ledger.
// Delivery is best-effort: failures are logged and never surfaced to
// the caller, and order placement has already committed by the time a
// notification goes out.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/config"
)

// LedgerNotifier posts domain events to a webhook URL
type LedgerNotifier struct {
	client     *http.Client
	webhookURL string
	logger     *zap.Logger
}

var _ shared.EventPublisher = (*LedgerNotifier)(nil)

// NewLedgerNotifier creates a notifier. Returns nil when no webhook
// URL is configured, which disables publication entirely.
func NewLedgerNotifier(cfg *config.LedgerConfig, logger *zap.Logger) *LedgerNotifier {
	if cfg.WebhookURL == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LedgerNotifier{
		client:     &http.Client{Timeout: timeout},
		webhookURL: cfg.WebhookURL,
		logger:     logger,
	}
}

// Publish delivers each event asynchronously. The caller's context may
// already be cancelled; each delivery gets its own deadline.
func (n *LedgerNotifier) Publish(ctx context.Context, events ...shared.DomainEvent) {
	for _, event := range events {
		go n.deliver(context.WithoutCancel(ctx), event)
	}
}

func (n *LedgerNotifier) deliver(ctx context.Context, event shared.DomainEvent) {
	ctx, cancel := context.WithTimeout(ctx, n.client.Timeout)
	defer cancel()

	payload, err := json.Marshal(envelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt().UTC().Format(time.RFC3339Nano),
		Data:          event,
	})
	if err != nil {
		n.logger.Error("failed to encode ledger event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("failed to build ledger request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("ledger notification failed",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Error("ledger notification rejected",
			zap.String("event_type", event.EventType()),
			zap.Int("status", resp.StatusCode),
			zap.Error(fmt.Errorf("unexpected status %d", resp.StatusCode)))
	}
}

type envelope struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	AggregateID   string      `json:"aggregate_id"`
	AggregateType string      `json:"aggregate_type"`
	OccurredAt    string      `json:"occurred_at"`
	Data          interface{} `json:"data"`
}
