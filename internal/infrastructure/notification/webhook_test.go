package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/propertyhub/backend/internal/domain/finance"
	"github.com/propertyhub/backend/internal/domain/shared"
	"github.com/propertyhub/backend/internal/infrastructure/config"
)

func newLinkedEvent(t *testing.T) *finance.ReceiptLinkedEvent {
	t.Helper()

	tenantID := uuid.New()
	receipt, err := finance.NewReceipt(
		tenantID, "invoice.pdf", 4096, "application/pdf",
		tenantID.String()+"/receipts/2026/invoice.pdf", "", nil, nil,
	)
	require.NoError(t, err)
	require.NoError(t, receipt.Process(uuid.New(), uuid.New()))

	return finance.NewReceiptLinkedEvent(receipt)
}

func newNotifier(url string) *WebhookNotifier {
	return NewWebhookNotifier(config.NotificationConfig{
		Enabled:    true,
		WebhookURL: url,
		Timeout:    time.Second,
	}, zap.NewNop())
}

func TestWebhookNotifier_Handle(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := newNotifier(server.URL)
	event := newLinkedEvent(t)

	err := notifier.Handle(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, finance.EventTypeReceiptLinked, received.EventType)
	assert.Equal(t, event.ReceiptID.String(), received.ReceiptID)
	assert.Equal(t, event.ExpenseID.String(), received.ExpenseID)
	assert.Equal(t, event.PropertyID.String(), received.PropertyID)
}

func TestWebhookNotifier_Handle_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := newNotifier(server.URL)

	err := notifier.Handle(context.Background(), newLinkedEvent(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestWebhookNotifier_Handle_UnreachableEndpoint(t *testing.T) {
	notifier := newNotifier("http://127.0.0.1:1/webhook")

	err := notifier.Handle(context.Background(), newLinkedEvent(t))

	require.Error(t, err)
}

func TestWebhookNotifier_Handle_WrongEventType(t *testing.T) {
	notifier := newNotifier("http://example.com/webhook")

	event := &finance.ReceiptUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			finance.EventTypeReceiptUploaded, finance.AggregateTypeReceipt,
			uuid.New(), uuid.New(),
		),
	}

	err := notifier.Handle(context.Background(), event)

	require.Error(t, err)
}

func TestWebhookNotifier_EventTypes(t *testing.T) {
	notifier := newNotifier("http://example.com/webhook")

	assert.Equal(t, []string{finance.EventTypeReceiptLinked}, notifier.EventTypes())
}
