package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Lines"), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUser finds all orders placed by a user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Preload("Lines").Where("user_id = ?", userID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("user_id = ?", userID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateWithReservation reserves stock for every line and inserts the
// order in one transaction. Reservations run in line order; the first
// failure aborts the transaction and rolls back every earlier decrement.
func (r *GormOrderRepository) CreateWithReservation(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range o.Reservations() {
			if err := tryReserve(tx, res.ProductID, res.Quantity); err != nil {
				return err
			}
		}
		return tx.Create(o).Error
	})
}

// UpdateStatusWithLock persists status changes with an optimistic
// version check. The row must still hold expectedVersion, the version
// the caller loaded before mutating the aggregate.
func (r *GormOrderRepository) UpdateStatusWithLock(ctx context.Context, o *order.Order, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND version = ?", o.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
			"processing_at":  o.ProcessingAt,
			"shipped_at":     o.ShippedAt,
			"delivered_at":   o.DeliveredAt,
			"version":        o.Version,
			"updated_at":     o.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CancelWithRelease releases the stock held by every line and persists
// the cancelled state in one transaction. A version conflict rolls the
// releases back.
func (r *GormOrderRepository) CancelWithRelease(ctx context.Context, o *order.Order, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range o.Reservations() {
			if err := release(tx, res.ProductID, res.Quantity); err != nil {
				return err
			}
		}

		result := tx.Model(&order.Order{}).
			Where("id = ? AND version = ?", o.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":         o.Status,
				"payment_status": o.PaymentStatus,
				"cancelled_at":   o.CancelledAt,
				"cancel_reason":  o.CancelReason,
				"version":        o.Version,
				"updated_at":     o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	query = query.Offset(filter.Offset()).Limit(filter.Limit())

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
