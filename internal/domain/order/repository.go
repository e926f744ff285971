package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders.
//
// CreateWithReservation and CancelWithRelease bundle the stock ledger
// mutation and the order row changes into one durable transaction, so a
// crash mid-operation leaves either "nothing happened" or "fully
// committed" - never stock decremented with no order to show for it.
type Repository interface {
	// FindByID loads an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CreateWithReservation atomically reserves stock for every line (in
	// line order, each via a single conditional decrement) and inserts
	// the order and its lines. Any reservation failure aborts the whole
	// transaction: no stock stays decremented, no rows are written.
	// Returns shared.ErrInsufficientStock or shared.ErrNotFound (wrapped
	// with the failing product) on reservation failure.
	CreateWithReservation(ctx context.Context, o *Order) error

	// UpdateStatusWithLock persists a status/payment-status change using
	// an optimistic version check against expectedVersion, the version
	// the aggregate carried when it was loaded. Returns
	// shared.ErrConcurrencyConflict if the order was modified concurrently.
	UpdateStatusWithLock(ctx context.Context, o *Order, expectedVersion int) error

	// CancelWithRelease atomically releases the stock held by every line
	// and persists the CANCELLED state with an optimistic version check
	// against expectedVersion. A conflict rolls the releases back.
	CancelWithRelease(ctx context.Context, o *Order, expectedVersion int) error
}
