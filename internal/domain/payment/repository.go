package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for payment records.
//
// CreateWithOrderPaid couples the payment insert with the order's payment
// status flip for instant channels, so the two never diverge.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// Create appends a payment record without touching the order
	Create(ctx context.Context, p *Payment) error

	// CreateWithOrderPaid atomically appends the payment record and marks
	// the referenced order PAID in one transaction
	CreateWithOrderPaid(ctx context.Context, p *Payment) error

	// Save persists an admin correction with an optimistic version check.
	// Returns shared.ErrConcurrencyConflict on a stale version.
	Save(ctx context.Context, p *Payment) error

	// Delete hard-deletes a payment record. No cascading effects.
	Delete(ctx context.Context, id uuid.UUID) error
}
