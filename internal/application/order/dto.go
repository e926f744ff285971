package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents a request to place a new order
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required,min=1,max=500"`
	PaymentMethod   string             `json:"payment_method" binding:"required,min=1,max=30"`

	// IdempotencyKey is taken from the Idempotency-Key header, not the body
	IdempotencyKey string `json:"-"`
}

// UpdateStatusRequest represents a request to move an order along its
// lifecycle. CANCELLED is accepted here and routed through the same
// stock-releasing path as the cancel endpoint.
type UpdateStatusRequest struct {
	Status        string  `json:"status" binding:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	UserID   *uuid.UUID `form:"user_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentSummary represents a payment attached to an order response
type PaymentSummary struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Lines           []OrderLineResponse `json:"lines"`
	Payments        []PaymentSummary    `json:"payments,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// OrderListResponse represents a list item for orders
type OrderListResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order, payments []payment.Payment) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SKU:         l.SKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		}
	}

	var summaries []PaymentSummary
	if len(payments) > 0 {
		summaries = make([]PaymentSummary, len(payments))
		for i, p := range payments {
			summaries[i] = PaymentSummary{
				ID:            p.ID,
				Amount:        p.Amount,
				Method:        p.Method.String(),
				Status:        p.Status.String(),
				TransactionID: p.TransactionID,
				CreatedAt:     p.CreatedAt,
			}
		}
	}

	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Lines:           lines,
		Payments:        summaries,
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		Total:           o.Total,
		Status:          o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToOrderListResponse converts a domain Order to OrderListResponse
func ToOrderListResponse(o *order.Order) OrderListResponse {
	return OrderListResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Total:         o.Total,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		ItemCount:     o.ItemCount(),
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderListResponses converts a slice of domain Orders to OrderListResponses
func ToOrderListResponses(orders []order.Order) []OrderListResponse {
	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListResponse(&orders[i])
	}
	return responses
}
