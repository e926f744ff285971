package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states no operation may leave
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Forward transitions only, plus a single escape to CANCELLED from any
// non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false
	}
	return false
}

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the payment status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Line represents an order line item. The unit price is a snapshot taken
// at order creation and is never updated, so the order total stays frozen
// regardless of later catalog price changes. Lines are created once and
// never mutated.
type Line struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	SKU         string          `gorm:"type:varchar(50);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "order_lines"
}

// NewLine creates a new order line with a snapshotted unit price
func NewLine(orderID, productID uuid.UUID, productName, sku string, quantity int64, unitPrice valueobject.Money) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Line{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      unitPrice.Amount().Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   time.Now(),
	}, nil
}

// GetUnitPriceMoney returns the snapshotted unit price as Money
func (l *Line) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.UnitPrice)
}

// Order represents a customer order aggregate root.
// It is created atomically with its lines and its monetary totals are
// frozen at creation time. Status and PaymentStatus are the only fields
// mutated afterwards, always through the methods below.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Lines           []Line          `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Tax             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PaymentMethod   string          `gorm:"type:varchar(30);not null"`
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Totals holds the frozen monetary amounts of an order at creation time
type Totals struct {
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
}

// NewOrder creates a new order in PENDING state with frozen totals.
// Lines must be non-empty; they are attached to the order as-is.
func NewOrder(userID uuid.UUID, shippingAddress, paymentMethod string, lines []Line, totals Totals) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shippingAddress == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Subtotal:          totals.Subtotal.Amount(),
		Tax:               totals.Tax.Amount(),
		Total:             totals.Total.Amount(),
		Status:            StatusPending,
		PaymentStatus:     PaymentStatusPending,
		ShippingAddress:   shippingAddress,
		PaymentMethod:     paymentMethod,
	}

	o.Lines = make([]Line, 0, len(lines))
	for i := range lines {
		lines[i].OrderID = o.ID
		o.Lines = append(o.Lines, lines[i])
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// TransitionTo moves the order to the target fulfillment status.
// Illegal jumps are rejected; cancellation must go through Cancel so
// the stock release is never skipped.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Use cancellation to move an order to CANCELLED")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	from := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now
	o.IncrementVersion()

	switch target {
	case StatusProcessing:
		o.ProcessingAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// Cancel moves the order to CANCELLED. Callers are responsible for
// releasing the reserved stock in the same unit of work.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	from := o.Status
	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o, from))

	return nil
}

// SetPaymentStatus records a new authoritative payment outcome
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", status))
	}
	if o.PaymentStatus == status {
		return nil
	}

	from := o.PaymentStatus
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentStatusChangedEvent(o, from, status))

	return nil
}

// Reservation identifies reserved stock belonging to one order line
type Reservation struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Reservations returns the stock quantities held by this order,
// one entry per line, in line order
func (o *Order) Reservations() []Reservation {
	out := make([]Reservation, 0, len(o.Lines))
	for _, line := range o.Lines {
		out = append(out, Reservation{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// IsTerminal returns true if the order is DELIVERED or CANCELLED
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.Quantity
	}
	return total
}

// GetTotalMoney returns the frozen order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}
