package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// OrderService coordinates order placement, lifecycle transitions and
// cancellation. Stock reservations and releases always travel in the
// same database transaction as the order rows they belong to; the
// service never touches the stock counter outside the repository's
// transactional operations.
type OrderService struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	paymentRepo payment.Repository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
}

// NewOrderService creates a new OrderService.
// The idempotency store may be nil, in which case duplicate-request
// detection is disabled.
func NewOrderService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	paymentRepo payment.Repository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		idempotency: idempotency,
		idemConfig:  idemConfig,
	}
}

// PlaceOrder creates a new order for the actor: prices the requested
// items at current catalog prices, then reserves stock and persists the
// order atomically. Either every line is reserved and the order exists,
// or nothing changed.
func (s *OrderService) PlaceOrder(ctx context.Context, actor identity.Actor, req PlaceOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		attribute.String(telemetry.SpanAttrUserID, actor.UserID.String()),
		attribute.Int(telemetry.SpanAttrItemCount, len(req.Items)),
	)
	defer span.End()

	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", fmt.Sprintf("Product %s appears more than once", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}

	if req.IdempotencyKey != "" && s.idempotency != nil && s.idemConfig.Enabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.idemConfig.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("DUPLICATE_REQUEST", "An order with this idempotency key was already placed")
		}
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Snapshot prices and build the priced cart in the caller's item order
	cartLines := make([]cart.Line, 0, len(req.Items))
	orderLines := make([]order.Line, 0, len(req.Items))
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", item.ProductID))
		}
		if !p.Active {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", fmt.Sprintf("Product %s is not available for sale", p.SKU))
		}

		cartLines = append(cartLines, cart.Line{UnitPrice: p.GetPriceMoney(), Quantity: item.Quantity})

		line, err := order.NewLine(uuid.Nil, p.ID, p.Name, p.SKU, item.Quantity, p.GetPriceMoney())
		if err != nil {
			return nil, err
		}
		orderLines = append(orderLines, *line)
	}

	quote, err := cart.Price(cartLines)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(actor.UserID, req.ShippingAddress, req.PaymentMethod, orderLines, order.Totals{
		Subtotal: quote.Subtotal,
		Tax:      quote.Tax,
		Total:    quote.Total,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateWithReservation(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.RecordDomainEvents(span, o.GetDomainEvents())
	o.ClearDomainEvents()

	response := ToOrderResponse(o, nil)
	return &response, nil
}

// GetOrder retrieves an order with its lines and payments.
// Only the owner or an admin may see it.
func (s *OrderService) GetOrder(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
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

	response := ToOrderResponse(o, payments)
	return &response, nil
}

// ListOrders lists orders visible to the actor. Regular users only ever
// see their own orders; admins see all orders and may narrow to one user.
func (s *OrderService) ListOrders(ctx context.Context, actor identity.Actor, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var (
		orders []order.Order
		total  int64
		err    error
	)

	switch {
	case !actor.IsAdmin():
		orders, err = s.orderRepo.FindByUser(ctx, actor.UserID, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.orderRepo.CountByUser(ctx, actor.UserID, domainFilter)
	case filter.UserID != nil:
		orders, err = s.orderRepo.FindByUser(ctx, *filter.UserID, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.orderRepo.CountByUser(ctx, *filter.UserID, domainFilter)
	default:
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.orderRepo.Count(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderListResponses(orders), total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// UpdateStatus moves an order along its fulfillment lifecycle and
// optionally records a new payment status. Admin only. A CANCELLED
// target goes through the same stock-releasing transaction as
// CancelOrder, so the release can never be skipped. Re-asserting the
// order's current state is a no-op and never touches the row.
func (s *OrderService) UpdateStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		attribute.String(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	loadedVersion := o.Version

	target := order.Status(req.Status)
	if target == order.StatusCancelled {
		if err := o.Cancel(""); err != nil {
			return nil, err
		}
		if req.PaymentStatus != nil {
			if err := o.SetPaymentStatus(order.PaymentStatus(*req.PaymentStatus)); err != nil {
				return nil, err
			}
		}
		if err := s.orderRepo.CancelWithRelease(ctx, o, loadedVersion); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		telemetry.RecordDomainEvents(span, o.GetDomainEvents())
		o.ClearDomainEvents()

		response := ToOrderResponse(o, nil)
		return &response, nil
	}

	if target != o.Status {
		if err := o.TransitionTo(target); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := o.SetPaymentStatus(order.PaymentStatus(*req.PaymentStatus)); err != nil {
			return nil, err
		}
	}

	// Nothing changed: the request re-asserts the state the order is
	// already in. Persisting would trip the version check forever.
	if o.Version == loadedVersion {
		response := ToOrderResponse(o, nil)
		return &response, nil
	}

	if err := s.orderRepo.UpdateStatusWithLock(ctx, o, loadedVersion); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.RecordDomainEvents(span, o.GetDomainEvents())
	o.ClearDomainEvents()

	response := ToOrderResponse(o, nil)
	return &response, nil
}

// CancelOrder cancels an order and releases the stock its lines were
// holding, atomically. The owner or an admin may cancel; only PENDING
// and PROCESSING orders are cancellable. Cancelling an already
// cancelled order fails rather than releasing stock twice.
func (s *OrderService) CancelOrder(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "cancel",
		attribute.String(telemetry.SpanAttrOrderID, orderID.String()),
	)
	defer span.End()

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(o.UserID) {
		return nil, shared.ErrForbidden
	}
	loadedVersion := o.Version

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CancelWithRelease(ctx, o, loadedVersion); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.RecordDomainEvents(span, o.GetDomainEvents())
	o.ClearDomainEvents()

	response := ToOrderResponse(o, nil)
	return &response, nil
}
