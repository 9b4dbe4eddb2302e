package event

import (
	"github.com/propertyhub/backend/internal/domain/finance"
)

// RegisterAllEvents registers the event types that reach the outbox table.
// The OutboxProcessor needs these registrations to deserialize events read
// back from the outbox. Only the receipt-linked notification is staged by
// the processing store; the other photo and receipt events stay internal
// to their aggregates.
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(finance.EventTypeReceiptLinked, &finance.ReceiptLinkedEvent{})
}
