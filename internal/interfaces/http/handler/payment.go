package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentapp "github.com/storefront/backend/internal/application/payment"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes on the given group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Record)
		payments.GET("/:id", h.GetByID)
		payments.PATCH("/:id", h.Update)
		payments.DELETE("/:id", h.Delete)
	}

	orders := rg.Group("/orders")
	{
		orders.GET("/:id/payments", h.ListByOrder)
		orders.POST("/:id/payment-confirmation", h.ConfirmOrderPayment)
	}
}

// Record appends a payment record to an order
func (h *PaymentHandler) Record(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req paymentapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.paymentService.Record(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one payment record
func (h *PaymentHandler) GetByID(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	resp, err := h.paymentService.GetByID(c.Request.Context(), actor, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByOrder returns the payment records of an order
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), actor, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Update corrects a payment record. Admin only.
func (h *PaymentHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req paymentapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.paymentService.Update(c.Request.Context(), actor, paymentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a payment record. Admin only.
func (h *PaymentHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), actor, paymentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ConfirmOrderPayment explicitly sets an order's payment status.
// Admin only; this is the confirmation path for deferred methods.
func (h *PaymentHandler) ConfirmOrderPayment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req paymentapp.ConfirmOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.paymentService.ConfirmOrderPayment(c.Request.Context(), actor, orderID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
