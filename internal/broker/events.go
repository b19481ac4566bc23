package broker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

const (
	EventTypeCheckoutSucceeded = "checkout.succeeded"
	EventTypeCheckoutCancelled = "checkout.cancelled"
)

// BaseEvent is the envelope shared by all published events.
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckoutSucceededEvent records an optimistic client-side success. The
// processor's own webhooks remain the financial source of truth; downstream
// consumers reconcile against those.
type CheckoutSucceededEvent struct {
	BaseEvent
	SessionID   string        `json:"session_id"`
	Method      string        `json:"method"`
	AmountUSD   string        `json:"amount_usd"`
	SubtotalUSD int64         `json:"subtotal_usd"`
	ShippingUSD int64         `json:"shipping_usd"`
	Lines       []domain.Line `json:"lines"`
}

type CheckoutCancelledEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
}

// EventPublisher publishes checkout lifecycle events.
type EventPublisher struct {
	producer *Producer
}

func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func newBase(eventType string) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

func (p *EventPublisher) PublishCheckoutSucceeded(ctx context.Context, sessionID string, method domain.PaymentMethod, amount string, totals domain.Totals, lines []domain.Line) error {
	event := CheckoutSucceededEvent{
		BaseEvent:   newBase(EventTypeCheckoutSucceeded),
		SessionID:   sessionID,
		Method:      string(method),
		AmountUSD:   amount,
		SubtotalUSD: totals.SubtotalUSD,
		ShippingUSD: totals.ShippingUSD,
		Lines:       lines,
	}
	return p.producer.PublishEvent(ctx, sessionID, event)
}

func (p *EventPublisher) PublishCheckoutCancelled(ctx context.Context, sessionID string, method domain.PaymentMethod) error {
	event := CheckoutCancelledEvent{
		BaseEvent: newBase(EventTypeCheckoutCancelled),
		SessionID: sessionID,
		Method:    string(method),
	}
	return p.producer.PublishEvent(ctx, sessionID, event)
}
