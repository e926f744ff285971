package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the settlement status of a single payment record
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Payment represents one recorded payment attempt against an order.
// Records are append-only: once written they are only touched by the
// explicit admin correction operation, never as a side effect of order
// processing. Several payments may reference the same order (retries,
// partial records); the order's own payment status is the authoritative
// outcome, not a count of rows here.
//
// ProviderData is an opaque provider-specific blob. The core stores and
// returns it verbatim and never interprets its contents; only Amount,
// Method and Status drive behavior.
type Payment struct {
	shared.BaseAggregateRoot
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method        Method          `gorm:"type:varchar(30);not null"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'PENDING'"`
	TransactionID *string         `gorm:"type:varchar(100)"`
	ProviderData  string          `gorm:"type:jsonb"` // JSON storage for provider payloads
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record for an order.
// Instant methods are born COMPLETED; deferred methods start PENDING.
func NewPayment(orderID, userID uuid.UUID, amount valueobject.Money, method Method, transactionID *string, providerData string) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}

	if providerData == "" {
		providerData = "{}"
	}

	status := StatusPending
	if method.IsInstant() {
		status = StatusCompleted
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		UserID:            userID,
		Amount:            amount.Amount(),
		Method:            method,
		Status:            status,
		TransactionID:     transactionID,
		ProviderData:      providerData,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// Correction holds the admin-editable fields of a payment.
// Nil fields are left unchanged.
type Correction struct {
	Amount *valueobject.Money
	Method *Method
	Status *Status
}

// ApplyCorrection mutates the payment in place with the given fields.
// This is the single mutation path for an otherwise append-only record
// and it deliberately does not touch the owning order: the caller must
// reconcile the order's payment status separately if warranted.
func (p *Payment) ApplyCorrection(c Correction) error {
	if c.Amount != nil {
		if !c.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
		}
	}
	if c.Method != nil && !c.Method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", *c.Method))
	}
	if c.Status != nil && !c.Status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", *c.Status))
	}

	if c.Amount != nil {
		p.Amount = c.Amount.Amount()
	}
	if c.Method != nil {
		p.Method = *c.Method
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentCorrectedEvent(p))

	return nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}
