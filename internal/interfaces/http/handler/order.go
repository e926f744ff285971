package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/storefront/backend/internal/application/order"
)

// IdempotencyKeyHeader carries the client's duplicate-submission guard
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Place)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// Place creates a new order from the request items. The optional
// Idempotency-Key header guards against duplicate submissions.
func (h *OrderHandler) Place(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	resp, err := h.orderService.PlaceOrder(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the orders visible to the actor
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns one order with its lines and payments
func (h *OrderHandler) GetByID(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus moves an order along its fulfillment lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels an order and releases its reserved stock
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	// The cancel reason is optional, so an empty body is accepted
	var req orderapp.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	resp, err := h.orderService.CancelOrder(c.Request.Context(), actor, orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
