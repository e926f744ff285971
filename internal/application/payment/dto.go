package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/payment"
)

// RecordPaymentRequest represents a request to record a payment against an order
type RecordPaymentRequest struct {
	OrderID       uuid.UUID       `json:"order_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required,min=1,max=30"`
	TransactionID *string         `json:"transaction_id" binding:"omitempty,max=100"`
	ProviderData  string          `json:"provider_data"`
}

// UpdatePaymentRequest represents an admin correction to a payment record.
// Nil fields are left unchanged.
type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Method *string          `json:"method" binding:"omitempty,min=1,max=30"`
	Status *string          `json:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED"`
}

// ConfirmOrderPaymentRequest represents an explicit admin reconciliation
// of an order's payment status
type ConfirmOrderPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=PENDING PAID FAILED REFUNDED"`
}

// PaymentResponse represents a payment record in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	ProviderData  string          `json:"provider_data,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Method:        p.Method.String(),
		Status:        p.Status.String(),
		TransactionID: p.TransactionID,
		ProviderData:  p.ProviderData,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToPaymentResponses converts a slice of domain Payments to PaymentResponses
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
