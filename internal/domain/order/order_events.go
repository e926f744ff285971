package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event type constants for the order context
const (
	EventTypeOrderCreated              = "order.created"
	EventTypeOrderStatusChanged        = "order.status_changed"
	EventTypeOrderCancelled            = "order.cancelled"
	EventTypeOrderPaymentStatusChanged = "order.payment_status_changed"
)

// OrderCreatedEvent is emitted when an order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID       `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, o.ID, "Order"),
		UserID:          o.UserID,
		Total:           o.Total,
		ItemCount:       len(o.Lines),
	}
}

// OrderStatusChangedEvent is emitted on a fulfillment status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, o.ID, "Order"),
		From:            from,
		To:              to,
	}
}

// OrderCancelledEvent is emitted when an order is cancelled.
// The stock held by the order's lines is released in the same unit of work.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	From         Status        `json:"from"`
	Reservations []Reservation `json:"reservations"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, from Status) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, o.ID, "Order"),
		From:            from,
		Reservations:    o.Reservations(),
	}
}

// OrderPaymentStatusChangedEvent is emitted when the payment status flips
type OrderPaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	From PaymentStatus `json:"from"`
	To   PaymentStatus `json:"to"`
}

// NewOrderPaymentStatusChangedEvent creates a new OrderPaymentStatusChangedEvent
func NewOrderPaymentStatusChangedEvent(o *Order, from, to PaymentStatus) *OrderPaymentStatusChangedEvent {
	return &OrderPaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentStatusChanged, o.ID, "Order"),
		From:            from,
		To:              to,
	}
}
