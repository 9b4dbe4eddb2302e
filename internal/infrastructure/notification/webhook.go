package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/config"
)

// WebhookNotifier relays receipt processing events to an external webhook.
// It subscribes to ReceiptLinked events on the event bus; the outbox relay
// delivers those after the processing transaction commits, so a webhook
// failure never rolls back the expense.
type WebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookNotifier creates a notifier for the configured webhook endpoint
func NewWebhookNotifier(cfg config.NotificationConfig, logger *zap.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookNotifier{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// webhookPayload is the body posted to the webhook endpoint
type webhookPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	TenantID   string    `json:"tenant_id"`
	ReceiptID  string    `json:"receipt_id"`
	ExpenseID  string    `json:"expense_id"`
	PropertyID string    `json:"property_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventTypes returns the event types this handler subscribes to
func (n *WebhookNotifier) EventTypes() []string {
	return []string{finance.EventTypeReceiptLinked}
}

// Handle posts a ReceiptLinked notification to the webhook endpoint.
// A non-2xx response is an error so the outbox relay retries delivery.
func (n *WebhookNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	linked, ok := event.(*finance.ReceiptLinkedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	payload := webhookPayload{
		EventID:    linked.EventID().String(),
		EventType:  linked.EventType(),
		TenantID:   linked.TenantID().String(),
		ReceiptID:  linked.ReceiptID.String(),
		ExpenseID:  linked.ExpenseID.String(),
		PropertyID: linked.PropertyID.String(),
		OccurredAt: linked.OccurredAt(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	n.logger.Debug("receipt linked notification delivered",
		zap.String("receipt_id", payload.ReceiptID),
		zap.String("expense_id", payload.ExpenseID),
	)

	return nil
}

var _ shared.EventHandler = (*WebhookNotifier)(nil)
