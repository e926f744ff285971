package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event type constants for the payment context
const (
	EventTypePaymentRecorded  = "payment.recorded"
	EventTypePaymentCorrected = "payment.corrected"
	EventTypePaymentDeleted   = "payment.deleted"
)

// PaymentRecordedEvent is emitted when a payment is recorded against an order
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Method  Method          `json:"method"`
	Status  Status          `json:"status"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, p.ID, "Payment"),
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		Status:          p.Status,
	}
}

// PaymentCorrectedEvent is emitted when an admin corrects a payment record
type PaymentCorrectedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Method  Method          `json:"method"`
	Status  Status          `json:"status"`
}

// NewPaymentCorrectedEvent creates a new PaymentCorrectedEvent
func NewPaymentCorrectedEvent(p *Payment) *PaymentCorrectedEvent {
	return &PaymentCorrectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCorrected, p.ID, "Payment"),
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		Status:          p.Status,
	}
}
