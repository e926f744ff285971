package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// PaymentService reconciles payment records against orders. Payments are
// append-only; recording one with an instant method flips the order's
// payment status in the same transaction, while deferred methods leave
// the order untouched until an explicit confirmation.
type PaymentService struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo payment.Repository, orderRepo order.Repository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// Record appends a payment record to an order. The caller must own the
// order or be an admin. Instant methods mark the order PAID atomically
// with the insert; deferred methods (cash, COD, bank transfer) leave the
// order's payment status as it was.
func (s *PaymentService) Record(ctx context.Context, actor identity.Actor, req RecordPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record",
		attribute.String(telemetry.SpanAttrOrderID, req.OrderID.String()),
		attribute.String(telemetry.SpanAttrMethod, req.Method),
	)
	defer span.End()

	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(o.UserID) {
		return nil, shared.ErrForbidden
	}

	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method %q", req.Method))
	}

	amount, err := valueobject.NewMoney(req.Amount, valueobject.USD)
	if err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(o.ID, o.UserID, amount, method, req.TransactionID, req.ProviderData)
	if err != nil {
		return nil, err
	}

	if method.IsInstant() {
		err = s.paymentRepo.CreateWithOrderPaid(ctx, p)
	} else {
		err = s.paymentRepo.Create(ctx, p)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.RecordDomainEvents(span, p.GetDomainEvents())
	p.ClearDomainEvents()

	response := ToPaymentResponse(p)
	return &response, nil
}

// GetByID retrieves a payment record. Owner or admin.
func (s *PaymentService) GetByID(ctx context.Context, actor identity.Actor, paymentID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(p.UserID) {
		return nil, shared.ErrForbidden
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// ListByOrder lists the payment records of an order. Owner or admin.
func (s *PaymentService) ListByOrder(ctx context.Context, actor identity.Actor, orderID uuid.UUID) ([]PaymentResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(o.UserID) {
		return nil, shared.ErrForbidden
	}

	payments, err := s.paymentRepo.FindByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	return ToPaymentResponses(payments), nil
}

// Update corrects a payment record after the fact. Admin only. The
// owning order's payment status is deliberately not replayed; if the
// correction warrants it, the admin confirms the order separately via
// ConfirmOrderPayment.
func (s *PaymentService) Update(ctx context.Context, actor identity.Actor, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	var correction payment.Correction
	if req.Amount != nil {
		amount, err := valueobject.NewMoney(*req.Amount, valueobject.USD)
		if err != nil {
			return nil, err
		}
		correction.Amount = &amount
	}
	if req.Method != nil {
		method := payment.Method(*req.Method)
		correction.Method = &method
	}
	if req.Status != nil {
		status := payment.Status(*req.Status)
		correction.Status = &status
	}

	if err := p.ApplyCorrection(correction); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// Delete hard-deletes a payment record. Admin only. Nothing else is
// touched: the order's stock, status and payment status stay as they are.
func (s *PaymentService) Delete(ctx context.Context, actor identity.Actor, paymentID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		return err
	}

	return s.paymentRepo.Delete(ctx, paymentID)
}

// ConfirmOrderPayment explicitly sets an order's payment status. Admin
// only. This is the confirmation step for deferred payment methods and
// the manual reconciliation path after a payment correction. Confirming
// the status the order already has is a no-op and never touches the row.
func (s *PaymentService) ConfirmOrderPayment(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req ConfirmOrderPaymentRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "confirm_order",
		attribute.String(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	loadedVersion := o.Version

	if err := o.SetPaymentStatus(order.PaymentStatus(req.PaymentStatus)); err != nil {
		return err
	}
	if o.Version == loadedVersion {
		return nil
	}

	if err := s.orderRepo.UpdateStatusWithLock(ctx, o, loadedVersion); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.RecordDomainEvents(span, o.GetDomainEvents())
	o.ClearDomainEvents()

	return nil
}
