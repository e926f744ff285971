package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOrder finds all payments recorded against an order, oldest first
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Create appends a payment record without touching the order
func (r *GormPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// CreateWithOrderPaid inserts the payment and marks the referenced order
// PAID in one transaction, so an instant payment can never exist without
// the order reflecting it.
func (r *GormPaymentRepository) CreateWithOrderPaid(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		result := tx.Model(&order.Order{}).
			Where("id = ?", p.OrderID).
			Updates(map[string]interface{}{
				"payment_status": order.PaymentStatusPaid,
				"version":        gorm.Expr("version + 1"),
				"updated_at":     p.CreatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Save persists an admin correction with an optimistic version check
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	result := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Updates(map[string]interface{}{
			"amount":     p.Amount,
			"method":     p.Method,
			"status":     p.Status,
			"version":    p.Version,
			"updated_at": p.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete hard-deletes a payment record
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&payment.Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPaymentRepository implements payment.Repository
var _ payment.Repository = (*GormPaymentRepository)(nil)
