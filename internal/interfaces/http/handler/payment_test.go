package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	paymentapp "github.com/storefront/backend/internal/application/payment"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

type paymentRouterDeps struct {
	paymentRepo *MockPaymentRepository
	orderRepo   *MockOrderRepository
	engine      *gin.Engine
}

func newPaymentRouter(t *testing.T, actor identity.Actor) paymentRouterDeps {
	t.Helper()

	deps := paymentRouterDeps{
		paymentRepo: new(MockPaymentRepository),
		orderRepo:   new(MockOrderRepository),
	}

	h := NewPaymentHandler(paymentapp.NewPaymentService(deps.paymentRepo, deps.orderRepo))

	engine := gin.New()
	api := engine.Group("/api/v1")
	authed := api.Group("")
	authed.Use(actorInjector(actor))
	h.RegisterRoutes(authed)

	deps.engine = engine
	return deps
}

func newPaymentFixture(t *testing.T, orderID, userID uuid.UUID) *payment.Payment {
	t.Helper()

	p, err := payment.NewPayment(orderID, userID, valueobject.NewMoneyUSDFromFloat(22.60), payment.MethodBankTransfer, nil, "")
	require.NoError(t, err)
	return p
}

func TestPaymentHandler_Record_Deferred(t *testing.T) {
	actor := userActor()
	deps := newPaymentRouter(t, actor)
	o := newOrderFixture(t, actor.UserID)

	deps.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	deps.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	w := performRequest(t, deps.engine, http.MethodPost, "/api/v1/payments", gin.H{
		"order_id": o.ID,
		"amount":   "22.60",
		"method":   "cash",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	deps.paymentRepo.AssertNotCalled(t, "CreateWithOrderPaid")
}

func TestPaymentHandler_Record_Instant(t *testing.T) {
	actor := userActor()
	deps := newPaymentRouter(t, actor)
	o := newOrderFixture(t, actor.UserID)

	deps.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	deps.paymentRepo.On("CreateWithOrderPaid", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	w := performRequest(t, deps.engine, http.MethodPost, "/api/v1/payments", gin.H{
		"order_id": o.ID,
		"amount":   "22.60",
		"method":   "credit_card",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "COMPLETED", data["status"])
	deps.paymentRepo.AssertNotCalled(t, "Create")
}

func TestPaymentHandler_Record_UnknownMethod(t *testing.T) {
	actor := userActor()
	deps := newPaymentRouter(t, actor)
	o := newOrderFixture(t, actor.UserID)

	deps.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	w := performRequest(t, deps.engine, http.MethodPost, "/api/v1/payments", gin.H{
		"order_id": o.ID,
		"amount":   "22.60",
		"method":   "wire_pigeon",
	}, nil)

	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_METHOD")
}

func TestPaymentHandler_ListByOrder(t *testing.T) {
	actor := userActor()
	deps := newPaymentRouter(t, actor)
	o := newOrderFixture(t, actor.UserID)
	p := newPaymentFixture(t, o.ID, actor.UserID)

	deps.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	deps.paymentRepo.On("FindByOrder", mock.Anything, o.ID).Return([]payment.Payment{*p}, nil)

	w := performRequest(t, deps.engine, http.MethodGet, "/api/v1/orders/"+o.ID.String()+"/payments", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
}

func TestPaymentHandler_Update_AdminOnly(t *testing.T) {
	deps := newPaymentRouter(t, userActor())

	w := performRequest(t, deps.engine, http.MethodPatch, "/api/v1/payments/"+uuid.NewString(), gin.H{
		"status": "FAILED",
	}, nil)

	assertErrorCode(t, w, http.StatusForbidden, "FORBIDDEN")
	deps.paymentRepo.AssertNotCalled(t, "Save")
}

func TestPaymentHandler_ConfirmOrderPayment(t *testing.T) {
	actor := adminActor()
	deps := newPaymentRouter(t, actor)
	o := newOrderFixture(t, uuid.New())

	deps.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	deps.orderRepo.On("UpdateStatusWithLock", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	w := performRequest(t, deps.engine, http.MethodPost, "/api/v1/orders/"+o.ID.String()+"/payment-confirmation", gin.H{
		"payment_status": "PAID",
	}, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	deps.orderRepo.AssertExpectations(t)
}

func TestPaymentHandler_Delete_NotFound(t *testing.T) {
	deps := newPaymentRouter(t, adminActor())

	missing := uuid.New()
	deps.paymentRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	w := performRequest(t, deps.engine, http.MethodDelete, "/api/v1/payments/"+missing.String(), nil, nil)

	assertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
}
