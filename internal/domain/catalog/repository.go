package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products,
// including the stock ledger primitives.
//
// TryReserve and Release are the only operations allowed to touch the
// stock counter. Both must be implemented as a single conditional update
// statement so that concurrent reservations on the same product cannot
// both observe the same starting count.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// TryReserve atomically decrements stock by quantity if and only if
	// stock >= quantity. Returns shared.ErrInsufficientStock when the
	// product exists but has too little stock, shared.ErrNotFound when
	// it does not exist.
	TryReserve(ctx context.Context, productID uuid.UUID, quantity int64) error

	// Release atomically increments stock by quantity. It is the inverse
	// of TryReserve and never fails on business grounds.
	Release(ctx context.Context, productID uuid.UUID, quantity int64) error
}
